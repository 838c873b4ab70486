// Package discovery walks an input folder, categorizes spreadsheet exports by
// filename, and attributes each file to an employee from its folder path.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/leadflow-cli/internal/model"
)

// sourceExtensions are the spreadsheet extensions the pipeline ingests.
var sourceExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// Filename keyword lists for file categorization. A lead-ish name containing
// an update keyword routes to updates ("leads_updated.xlsx" is a progress
// file, not a fresh export). Unmatched files default to leads.
var (
	leadKeywords    = []string{"lead", "prospect", "contact", "customer"}
	updateKeywords  = []string{"update", "updated", "followup", "status", "progress"}
	callLogKeywords = []string{"call", "log", "dial", "report", "communication"}
)

// genericFolders are directory names that never identify an employee.
var genericFolders = map[string]bool{
	"data":      true,
	"leads":     true,
	"updates":   true,
	"call_logs": true,
	"calls":     true,
	"reports":   true,
}

var employeeCaser = cases.Title(language.English)

// Discover recursively enumerates source files under root, categorizes each
// by filename, and attributes it to an employee. Results are sorted by path:
// that ordering is the stable concatenation order the keep-first dedup
// contract depends on.
func Discover(root string) ([]model.SourceFile, error) {
	var files []model.SourceFile

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// An unreadable subtree is skipped, not fatal.
			zap.L().Warn("discovery: skipping unreadable path",
				zap.String("path", path),
				zap.Error(err),
			)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		files = append(files, model.SourceFile{
			Path:     path,
			Name:     filepath.Base(path),
			Kind:     CategorizeFile(filepath.Base(path)),
			Employee: employeeFromPath(root, path),
		})
		return nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "discovery: walk input folder")
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	counts := make(map[model.FileKind]int)
	for _, f := range files {
		counts[f.Kind]++
	}
	zap.L().Info("discovery: categorized source files",
		zap.Int("total", len(files)),
		zap.Int("leads", counts[model.KindLeads]),
		zap.Int("updates", counts[model.KindUpdates]),
		zap.Int("call_logs", counts[model.KindCallLogs]),
	)

	return files, nil
}

// CategorizeFile routes a filename to a file kind by keyword match.
func CategorizeFile(name string) model.FileKind {
	lower := strings.ToLower(name)

	if containsAny(lower, leadKeywords) {
		if containsAny(lower, []string{"update", "updated"}) {
			return model.KindUpdates
		}
		return model.KindLeads
	}
	if containsAny(lower, updateKeywords) {
		return model.KindUpdates
	}
	if containsAny(lower, callLogKeywords) {
		return model.KindCallLogs
	}
	return model.KindLeads
}

// employeeFromPath walks the file's parent directories inside root from the
// innermost outwards and returns the first name that is not generic, hidden,
// or too short to be a person's name. Files directly under root stay
// unattributed.
func employeeFromPath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return model.UnknownName
	}
	parts := strings.Split(filepath.Dir(rel), string(os.PathSeparator))
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if part == "." || part == ".." {
			continue
		}
		if !genericFolders[strings.ToLower(part)] && !strings.HasPrefix(part, ".") && len(part) > 2 {
			return employeeCaser.String(strings.ToLower(part))
		}
	}
	return model.UnknownName
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
