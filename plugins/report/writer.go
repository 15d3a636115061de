package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"newsdesk/log"
	"newsdesk/orm"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Writer renders markdown reports into a directory and records them
type Writer struct {
	dir   string
	db    *gorm.DB
	now   func() time.Time
	title cases.Caser
}

// NewWriter creates a report writer. db is optional; when set, written
// reports are recorded in storage.
func NewWriter(dir string, db *gorm.DB) *Writer {
	if dir == "" {
		dir = "reports"
	}
	return &Writer{
		dir:   dir,
		db:    db,
		now:   time.Now,
		title: cases.Title(language.English),
	}
}

// Write renders a markdown report and returns its absolute path.
// The filename is derived from the title and a timestamp so repeated
// reports never collide.
func (w *Writer) Write(ctx context.Context, title, content string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("title is required")
	}
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("content is required")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports dir: %w", err)
	}

	ts := w.now()
	name := fmt.Sprintf("%s_%s.md", slugify(title), ts.Format("20060102_150405"))

	path, err := filepath.Abs(filepath.Join(w.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to resolve report path: %w", err)
	}

	rendered := w.render(title, content, ts)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	log.Infof(ctx, "[Report] Wrote %s (%d bytes)", path, len(rendered))

	if w.db != nil {
		record := &orm.ReportFile{
			Title:     title,
			Path:      path,
			SizeBytes: int64(len(rendered)),
		}
		if err := orm.CreateReportFile(w.db, record); err != nil {
			log.Warnf(ctx, "[Report] Failed to record report file: %v", err)
		}
	}

	return path, nil
}

// render produces the markdown document: title-cased heading, generation
// timestamp, then the body as given.
func (w *Writer) render(title, content string, ts time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", w.title.String(title))
	fmt.Fprintf(&b, "_Generated at %s_\n\n", ts.Format(time.RFC3339))
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n")
	return b.String()
}

// slugify reduces a title to a safe filename fragment
func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "_")
	slug = strings.Trim(slug, "_")
	if slug == "" {
		slug = "report"
	}
	if len(slug) > 48 {
		slug = slug[:48]
	}
	return slug
}
