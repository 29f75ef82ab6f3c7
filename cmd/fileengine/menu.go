package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GriffinCanCode/fileengine/internal/engine"
)

// prompter collects operation arguments from the user.
type prompter interface {
	Ask(label string) (string, error)
	Secret(label string) (string, error)
}

type menuItem struct {
	label string
	build func(p prompter) (engine.Operation, error)
}

var menu = []menuItem{
	{"Create Directory (Admin Only)", one("Directory name", func(s string) engine.Operation { return engine.CreateDirectory{Name: s} })},
	{"Create File", one("File name", func(s string) engine.Operation { return engine.CreateFile{Name: s} })},
	{"List Directory", none(engine.ListDirectory{})},
	{"Delete File (Admin Only)", one("File name", func(s string) engine.Operation { return engine.DeleteFile{Name: s} })},
	{"Delete Directory (Admin Only)", one("Directory name", func(s string) engine.Operation { return engine.DeleteDirectory{Name: s} })},
	{"Move File/Directory", two("Source", "Destination", func(a, b string) engine.Operation { return engine.Move{Src: a, Dst: b} })},
	{"Rename File/Directory", two("Old name", "New name", func(a, b string) engine.Operation { return engine.Rename{Old: a, New: b} })},
	{"Copy File/Directory", two("Source", "Destination", func(a, b string) engine.Operation { return engine.Copy{Src: a, Dst: b} })},
	{"Read File", one("File name", func(s string) engine.Operation { return engine.ReadFile{Name: s} })},
	{"Write to File", two("File name", "Content", func(a, b string) engine.Operation { return engine.WriteFile{Name: a, Content: b} })},
	{"Search Files", buildSearch},
	{"Change Directory", one("Directory", func(s string) engine.Operation { return engine.ChangeDirectory{Name: s} })},
	{"Show Current Path", none(engine.CurrentPath{})},
	{"Compress File", two("File name", "Archive name (.zip, .tar, .tar.gz, .tar.zst)", func(a, b string) engine.Operation { return engine.Compress{Name: a, Archive: b} })},
	{"Decompress File", one("Archive name", func(s string) engine.Operation { return engine.Decompress{Archive: s} })},
	{"Encrypt File", buildCrypto(true)},
	{"Decrypt File", buildCrypto(false)},
	{"Batch Rename", two("Text to replace", "Replacement", func(a, b string) engine.Operation { return engine.BatchRename{Old: a, New: b} })},
	{"Preview File", buildPreview},
	{"File Properties", one("Name", func(s string) engine.Operation { return engine.Properties{Name: s} })},
	{"Directory Tree", one("Directory (blank for current)", func(s string) engine.Operation { return engine.Tree{Name: s} })},
	{"Recent Files", buildRecent},
	{"Find Duplicates", none(engine.FindDuplicates{})},
	{"Bookmark Directory", one("Directory (blank for current)", func(s string) engine.Operation { return engine.AddBookmark{Name: s} })},
	{"List Bookmarks", none(engine.ListBookmarks{})},
	{"View Log Dashboard", none(engine.LogDashboard{})},
}

// exitChoice is the menu number that ends the shell.
var exitChoice = len(menu) + 1

func menuText() string {
	var b strings.Builder
	b.WriteString("--- File Management System ---\n")
	for i, item := range menu {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.label)
	}
	fmt.Fprintf(&b, "%d. Exit\n", exitChoice)
	b.WriteString("Type --help for instructions.")
	return b.String()
}

// choose maps a menu number onto a menu item.
func choose(choice string) (menuItem, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(choice))
	if err != nil || n < 1 || n > len(menu) {
		return menuItem{}, false
	}
	return menu[n-1], true
}

func none(op engine.Operation) func(prompter) (engine.Operation, error) {
	return func(prompter) (engine.Operation, error) { return op, nil }
}

func one(label string, fn func(string) engine.Operation) func(prompter) (engine.Operation, error) {
	return func(p prompter) (engine.Operation, error) {
		v, err := p.Ask(label)
		if err != nil {
			return nil, err
		}
		return fn(v), nil
	}
}

func two(first, second string, fn func(a, b string) engine.Operation) func(prompter) (engine.Operation, error) {
	return func(p prompter) (engine.Operation, error) {
		a, err := p.Ask(first)
		if err != nil {
			return nil, err
		}
		b, err := p.Ask(second)
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	}
}

func buildCrypto(encrypt bool) func(prompter) (engine.Operation, error) {
	return func(p prompter) (engine.Operation, error) {
		name, err := p.Ask("File name")
		if err != nil {
			return nil, err
		}
		password, err := p.Secret("Password")
		if err != nil {
			return nil, err
		}
		if encrypt {
			return engine.EncryptFile{Name: name, Password: password}, nil
		}
		return engine.DecryptFile{Name: name, Password: password}, nil
	}
}

func buildSearch(p prompter) (engine.Operation, error) {
	var op engine.Search
	var err error
	if op.Name, err = p.Ask("Name contains (blank for any)"); err != nil {
		return nil, err
	}

	size, err := p.Ask("Exact size in bytes (optional)")
	if err != nil {
		return nil, err
	}
	if size = strings.TrimSpace(size); size != "" {
		n, err := strconv.ParseInt(size, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("size %q is not a number", size)
		}
		op.Size = &n
	}

	if op.Suffix, err = p.Ask("Extension, e.g. .txt (optional)"); err != nil {
		return nil, err
	}

	date, err := p.Ask("Modified on YYYY-MM-DD (optional)")
	if err != nil {
		return nil, err
	}
	if date = strings.TrimSpace(date); date != "" {
		d, err := time.ParseInLocation(time.DateOnly, date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("date %q must look like 2006-01-02", date)
		}
		op.Date = &d
	}

	if op.Glob, err = p.Ask("Glob, e.g. **/*.log (optional)"); err != nil {
		return nil, err
	}
	return op, nil
}

func buildPreview(p prompter) (engine.Operation, error) {
	name, err := p.Ask("File name")
	if err != nil {
		return nil, err
	}
	n, err := optionalInt(p, "Lines (blank for default)")
	if err != nil {
		return nil, err
	}
	return engine.PreviewFile{Name: name, Lines: n}, nil
}

func buildRecent(p prompter) (engine.Operation, error) {
	n, err := optionalInt(p, "How many (blank for default)")
	if err != nil {
		return nil, err
	}
	return engine.RecentFiles{Count: n}, nil
}

func optionalInt(p prompter, label string) (int, error) {
	v, err := p.Ask(label)
	if err != nil {
		return 0, err
	}
	if v = strings.TrimSpace(v); v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%q is not a positive number", v)
	}
	return n, nil
}
