package config

import (
	"context"
	"fmt"

	"github.com/cognicore/kbase/pkg/kbase/logic"
	"github.com/cognicore/kbase/pkg/kbase/reader"
	"github.com/cognicore/kbase/pkg/kbase/source/sqlite"
)

// Loader reads every configured source and returns the sentences in order
type Loader struct {
	Config *Config
	// Files are extra reader-syntax files, loaded after the configured sources.
	Files []string
}

// Load reads all sources. Errors name the source that failed.
func (l *Loader) Load(ctx context.Context) ([]logic.Sentence, error) {
	var sources []Source
	if l.Config != nil {
		sources = append(sources, l.Config.Sources...)
	}
	for _, f := range l.Files {
		sources = append(sources, Source{Kind: KindText, Path: f})
	}

	var out []logic.Sentence
	for _, src := range sources {
		sentences, err := loadSource(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("load %s source %q: %w", src.Kind, src.Path, err)
		}
		out = append(out, sentences...)
	}
	return out, nil
}

func loadSource(ctx context.Context, src Source) ([]logic.Sentence, error) {
	switch src.Kind {
	case KindText:
		return reader.ReadFile(src.Path)
	case KindYAML:
		return loadYAML(src.Path)
	case KindSQLite:
		return loadSQLite(ctx, src.Path, src.Table)
	}
	return nil, fmt.Errorf("unknown kind %q", src.Kind)
}

func loadYAML(path string) ([]logic.Sentence, error) {
	st, err := LoadStatements(path)
	if err != nil {
		return nil, err
	}

	out := make([]logic.Sentence, 0, len(st.Facts)+len(st.Rules))
	for i, f := range st.Facts {
		s, err := reader.ParseStatement(f)
		if err != nil {
			return nil, fmt.Errorf("fact %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	for i, r := range st.Rules {
		rule, err := reader.ParseRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i+1, err)
		}
		out = append(out, rule)
	}
	return out, nil
}

func loadSQLite(ctx context.Context, path, table string) ([]logic.Sentence, error) {
	src, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return src.Statements(ctx, table)
}
