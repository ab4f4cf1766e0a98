package api

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"github.com/VA-creat/eassylang/internal/models"
	"github.com/VA-creat/eassylang/internal/practice"
)

// LoadTemplates parses the layouts, pages and partials found under dir.
func LoadTemplates(dir string) (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		// containsID reports whether id is in ids; used to keep checkboxes ticked.
		"containsID": func(ids []int64, id int64) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
		// dict builds a map so a partial can receive several named values.
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict needs key/value pairs, got %d args", len(pairs))
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
		"expected": func(q models.PracticeQuestion) string {
			return practice.ExpectedAnswer(q.Kind, q.Word)
		},
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("2006-01-02 15:04")
		},
		"derefTime": func(t *time.Time) time.Time {
			if t == nil {
				return time.Time{}
			}
			return *t
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		filepath.Join(dir, "layouts", "*.html"),
		filepath.Join(dir, "pages", "*.html"),
		filepath.Join(dir, "partials", "*.html"),
	}
	parsed := 0
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFiles(matches...); err != nil {
			return nil, err
		}
		parsed += len(matches)
	}
	if parsed == 0 {
		return nil, fmt.Errorf("no templates found under %s", dir)
	}

	return t, nil
}
