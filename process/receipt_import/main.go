package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fintrack/models"
	"fintrack/pkg/receipt"
)

var db *gorm.DB

var (
	verbose bool
	dryRun  bool
)

var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func mustInitDBFromEnv() *gorm.DB {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatalf("DB_DSN must be set in environment to run this tool")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	return gdb
}

// Main: scans a directory of receipt images, OCRs each one and records the
// extracted amount as an Expense for the given user; optional watch mode.
func main() {
	_ = godotenv.Load()
	dirFlag := flag.String("dir", "receipts", "directory to scan for receipt images")
	userID := flag.Uint("user-id", 0, "user ID to assign imported expenses to (defaults to the admin user)")
	watch := flag.Bool("watch", false, "watch directory for new files")
	workers := flag.Int("workers", 0, "worker pool size (default NumCPU)")
	flag.BoolVar(&dryRun, "dry-run", false, "OCR files and report amounts without touching the database")
	flag.BoolVar(&verbose, "verbose", false, "verbose per-file logging")
	flag.Parse()

	if !dryRun {
		db = mustInitDBFromEnv()
	}
	owner := resolveOwner(*userID)

	nw := *workers
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	jobs := make(chan string, 64)
	var wg sync.WaitGroup
	for i := 0; i < nw; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				importReceipt(path, owner)
			}
		}()
	}

	for _, f := range listImageFiles(*dirFlag) {
		jobs <- filepath.Join(*dirFlag, f)
	}

	if *watch {
		watchDir(*dirFlag, jobs)
	}
	close(jobs)
	wg.Wait()
}

// resolveOwner returns the user the imported expenses belong to.
func resolveOwner(userID uint) uint {
	if dryRun {
		return userID
	}
	if userID != 0 {
		var u models.User
		if err := db.First(&u, userID).Error; err != nil {
			log.Fatalf("user %d not found: %v", userID, err)
		}
		return u.ID
	}
	var admin models.User
	if err := db.Where("is_admin = ?", true).First(&admin).Error; err != nil {
		log.Fatalf("no admin user found and no -user-id given: %v", err)
	}
	return admin.ID
}

func listImageFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("read dir %s: %v", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	return files
}

// importReceipt OCRs one file and records it as an expense. The file name
// doubles as the expense title and the dedupe key per user.
func importReceipt(path string, owner uint) {
	name := filepath.Base(path)
	if !dryRun {
		var existing models.Expense
		if err := db.Where("user_id = ? AND title = ?", owner, name).First(&existing).Error; err == nil {
			if verbose {
				log.Printf("%s: already imported (expense id=%d)", name, existing.ID)
			}
			return
		}
	}
	amt, conf, raw, err := receipt.ExtractAmount(path)
	if err != nil {
		log.Printf("%s: %v", name, err)
		return
	}
	if verbose || dryRun {
		log.Printf("%s: amount=%s confidence=%.2f raw=%q", name, amt, conf, raw)
	}
	if dryRun {
		return
	}
	exp := models.Expense{
		Title:       name,
		Description: "imported from receipt scan",
		Type:        "Expense",
		Amount:      amt,
		UserID:      owner,
		Date:        time.Now(),
	}
	if err := db.Create(&exp).Error; err != nil {
		log.Printf("%s: create expense failed: %v", name, err)
		return
	}
	log.Printf("%s: recorded expense id=%d amount=%s", name, exp.ID, amt)
}

// watchDir feeds newly created image files into the job channel until the
// process is interrupted.
func watchDir(dir string, jobs chan<- string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("fsnotify: %v", err)
	}
	defer watcher.Close()
	if err := watcher.Add(dir); err != nil {
		log.Fatalf("watch %s: %v", dir, err)
	}
	log.Printf("watching %s for new receipts", dir)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create == 0 {
				continue
			}
			if !imageExts[strings.ToLower(filepath.Ext(ev.Name))] {
				continue
			}
			// give the writer a moment to finish the file
			time.Sleep(200 * time.Millisecond)
			jobs <- ev.Name
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}
