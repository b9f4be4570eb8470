package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/docloc/catalog"
)

// TemplateOptions configures template assembly.
type TemplateOptions struct {
	// Project fills the Project-Id-Version header field.
	Project string

	// BugsAddress fills Report-Msgid-Bugs-To.
	BugsAddress string

	// Generator names the generating tool in the Generated-By field.
	Generator string

	// Now supplies the POT-Creation-Date; defaults to time.Now.
	Now func() time.Time
}

// NewTemplate creates an empty POT catalog with a generated header.
func NewTemplate(opts TemplateOptions) *catalog.File {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	generator := opts.Generator
	if generator == "" {
		generator = "docloc"
	}

	h := &catalog.Header{}
	h.Set(catalog.HeaderProjectIDVersion, opts.Project)
	h.Set(catalog.HeaderReportMsgidBugsTo, opts.BugsAddress)
	h.Set(catalog.HeaderPOTCreationDate, now().Format("2006-01-02 15:04-0700"))
	h.Set(catalog.HeaderPORevisionDate, "YEAR-MO-DA HO:MI+ZONE")
	h.Set(catalog.HeaderLastTranslator, "FULL NAME <EMAIL@ADDRESS>")
	h.Set(catalog.HeaderLanguageTeam, "LANGUAGE <LL@li.org>")
	h.Set(catalog.HeaderMIMEVersion, "1.0")
	h.Set(catalog.HeaderContentType, "text/plain; charset=utf-8")
	h.Set(catalog.HeaderContentTransferEncoding, "8bit")
	h.Set(catalog.HeaderGeneratedBy, generator)

	f := catalog.NewFile()
	f.SetHeader(h)
	if hm := f.HeaderMessage(); hm != nil {
		hm.SetFlag(catalog.FlagFuzzy)
	}
	return f
}

// AddMessage merges a freshly extracted message into the template.
// A message whose source text is already present contributes its
// references and extracted comments to the existing entry instead of
// duplicating it.
func AddMessage(tmpl *catalog.File, m *catalog.Message) error {
	if m.ID == "" {
		return nil
	}
	if existing := tmpl.Lookup(m.Ctxt, m.ID); existing != nil {
		existing.References = append(existing.References, m.References...)
		existing.ExtractedComments = append(existing.ExtractedComments, m.ExtractedComments...)
		return nil
	}
	if len(m.Str) == 0 {
		m.Str = []string{""}
	}
	return tmpl.Add(m)
}

// Run walks sourceRoot for files matching the doublestar globs,
// dispatches each to its registered extractor, and assembles the
// template. Files without a registered extractor are skipped.
func Run(ctx context.Context, reg *Registry, sourceRoot string, globs []string, opts TemplateOptions) (*catalog.File, error) {
	tmpl := NewTemplate(opts)

	for _, glob := range globs {
		matches, err := doublestar.FilepathGlob(filepath.Join(sourceRoot, glob))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", glob, err)
		}
		for _, path := range matches {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			ext := filepath.Ext(path)
			extractor, err := reg.CreateForExtension(ext, sourceRoot)
			if err != nil {
				continue
			}
			messages, err := extractor.ExtractFile(ctx, path)
			if err != nil {
				return nil, fmt.Errorf("extract %s: %w", path, err)
			}
			for _, m := range messages {
				if err := AddMessage(tmpl, m); err != nil {
					return nil, err
				}
			}
		}
	}
	return tmpl, nil
}
