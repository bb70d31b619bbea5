package glossary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"soonish/pkg/future"
)

// fileTable is the on-disk shape of a glossary file.
type fileTable struct {
	Language string      `yaml:"language"`
	Entries  []fileEntry `yaml:"entries"`
}

type fileEntry struct {
	Trigger string       `yaml:"trigger"`
	Results []fileResult `yaml:"results"`
}

type fileResult struct {
	Kind  string `yaml:"kind"`
	Value any    `yaml:"value"`
}

// Load reads a glossary table from a YAML file. Triggers are lowercased; a
// special's value may be given by tag name ("next_week") or by number.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read glossary: %w", err)
	}

	var ft fileTable
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&ft); err != nil {
		return nil, fmt.Errorf("parse glossary %s: %w", filepath.Base(path), err)
	}
	if ft.Language == "" {
		return nil, fmt.Errorf("glossary %s: missing language", filepath.Base(path))
	}

	entries := make(map[string]Results, len(ft.Entries))
	for _, fe := range ft.Entries {
		trigger := strings.ToLower(strings.TrimSpace(fe.Trigger))
		if trigger == "" {
			return nil, fmt.Errorf("glossary %s: empty trigger", filepath.Base(path))
		}
		if len(fe.Results) == 0 {
			return nil, fmt.Errorf("glossary %s: trigger %q has no results", filepath.Base(path), trigger)
		}
		rs := make(Results, 0, len(fe.Results))
		for _, fr := range fe.Results {
			r, err := decodeResult(fr)
			if err != nil {
				return nil, fmt.Errorf("glossary %s: trigger %q: %w", filepath.Base(path), trigger, err)
			}
			rs = append(rs, r)
		}
		entries[trigger] = rs
	}
	return New(ft.Language, entries), nil
}

// LoadDir loads every *.yaml and *.yml file in dir and merges tables per
// language on top of the builtins. Custom triggers shadow builtin ones.
func LoadDir(dir string) (map[string]*Table, error) {
	tables := make(map[string]*Table)
	for _, lang := range Languages() {
		tables[lang] = Builtin(lang)
	}

	names, err := filepath.Glob(filepath.Join(dir, "*.y*ml"))
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		t, err := Load(name)
		if err != nil {
			return nil, err
		}
		if base, ok := tables[t.Language]; ok {
			tables[t.Language] = merge(base, t)
		} else {
			tables[t.Language] = t
		}
	}
	return tables, nil
}

func merge(base, over *Table) *Table {
	entries := make(map[string]Results, base.Len()+over.Len())
	for _, w := range base.Words() {
		entries[w] = base.entries[w]
	}
	for _, w := range over.Words() {
		entries[w] = over.entries[w]
	}
	return New(base.Language, entries)
}

func decodeResult(fr fileResult) (Result, error) {
	kind, err := ParseKind(fr.Kind)
	if err != nil {
		return Result{}, err
	}

	switch v := fr.Value.(type) {
	case int:
		return Result{Kind: kind, Value: v}, nil
	case string:
		if kind != KindSpecial {
			return Result{}, fmt.Errorf("kind %s needs a numeric value, got %q", kind, v)
		}
		sp, ok := future.ParseSpecial(strings.ToLower(v))
		if !ok {
			return Result{}, fmt.Errorf("unknown special %q", v)
		}
		return Result{Kind: kind, Value: int(sp)}, nil
	default:
		return Result{}, fmt.Errorf("kind %s: unsupported value %v", kind, fr.Value)
	}
}
