package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"fintrack/pkg/money"
)

// ErrNoAmount is returned when no plausible monetary amount can be extracted.
var ErrNoAmount = errors.New("no amount detected")

// ExtractAmount runs light preprocessing plus Tesseract OCR over a receipt
// image and extracts the most likely total. It returns the amount in minor
// units, a confidence proxy in [0,1], and the raw matched substring.
func ExtractAmount(path string) (money.Amount, float64, string, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, "", fmt.Errorf("open image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	// OCR the original plus two cleaned-up variants; receipts photographed
	// at an angle often only yield the amount on one of them.
	norm := normalize(img)
	var texts []string
	for _, variant := range []image.Image{img, norm, binarize(norm, 160)} {
		data, err := encodePNG(variant)
		if err != nil {
			continue
		}
		if err := client.SetImageFromBytes(data); err != nil {
			continue
		}
		text, err := client.Text()
		if err != nil || text == "" {
			continue
		}
		texts = append(texts, text)
	}
	if len(texts) == 0 {
		return 0, 0, "", fmt.Errorf("ocr produced no text for %s", path)
	}

	var matches []string
	for _, t := range texts {
		matches = append(matches, FindCandidates(t)...)
	}
	if len(matches) == 0 {
		return 0, 0, "", ErrNoAmount
	}
	amt, raw, ok := BestAmount(matches)
	if !ok {
		return 0, 0, "", ErrNoAmount
	}

	allText := strings.Join(texts, "\n")
	conf := float64(len(raw)) / float64(len(allText)+1)
	if conf > 1 {
		conf = 1
	}
	low := strings.ToLower(raw)
	if strings.Contains(low, "$") || strings.Contains(low, "usd") || strings.Contains(low, "total") {
		if conf < 0.85 {
			conf = 0.85
		}
	}
	return amt, conf, raw, nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
