package render

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"git.home.luguber.info/inful/htmlgen/internal/content"
	"git.home.luguber.info/inful/htmlgen/internal/foundation/errors"
	"git.home.luguber.info/inful/htmlgen/internal/lang"
	"git.home.luguber.info/inful/htmlgen/internal/logfields"
	"git.home.luguber.info/inful/htmlgen/internal/tables"
)

// Reserved placeholder names.
const (
	PlaceholderAlternateLinkPrefix = "alternate_link_"
	PlaceholderExtraHead           = "extra_head"
	PlaceholderLang                = "lang"
	PlaceholderContent             = "content"
	PlaceholderLastModifiedHuman   = "last_modified_human"
	PlaceholderLastModifiedMachine = "last_modified_machine"
	PlaceholderExtraScripts        = "extra_scripts"
)

// AlternateLinkPlaceholder names the placeholder holding the page's file name in l.
func AlternateLinkPlaceholder(l lang.Lang) string {
	return PlaceholderAlternateLinkPrefix + l.String()
}

// Page is an assembled page waiting to be written.
type Page struct {
	RelPath    string // Output path relative to the output root
	Lang       lang.Lang
	HTML       string
	Unresolved []string // Placeholders left verbatim (only with AllowUnresolved)
}

// Options tune page assembly.
type Options struct {
	ContentIndent      int
	ExtraHeadIndent    int
	ExtraScriptsIndent int
	AllowUnresolved    bool
	Location           *time.Location // Zone timestamps are rendered in; nil for local time
}

// DefaultOptions matches the layout of the generated sources.
func DefaultOptions() Options {
	return Options{ContentIndent: 6, ExtraHeadIndent: 6, ExtraScriptsIndent: 4}
}

// Builder composes pages from the template, the tables and a unit's fragments.
type Builder struct {
	tmpl         *Template
	translations *tables.Translations
	links        *tables.AlternateLinks
	reader       *content.Reader
	lastmod      content.LastModifiedResolver
	opts         Options
}

// NewBuilder creates a page builder.
func NewBuilder(tmpl *Template, translations *tables.Translations, links *tables.AlternateLinks,
	reader *content.Reader, lastmod content.LastModifiedResolver, opts Options,
) *Builder {
	if lastmod == nil {
		lastmod = content.MtimeResolver{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Builder{
		tmpl:         tmpl,
		translations: translations,
		links:        links,
		reader:       reader,
		lastmod:      lastmod,
		opts:         opts,
	}
}

// Build assembles the page for u.
func (b *Builder) Build(ctx context.Context, u content.Unit) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bindings, err := b.Bindings(u)
	if err != nil {
		return nil, err
	}

	html, unresolved := b.tmpl.Execute(bindings)
	if len(unresolved) > 0 {
		if !b.opts.AllowUnresolved {
			return nil, errors.BuildError("unresolved placeholders").
				WithContext("path", u.Path).
				WithContext("placeholders", strings.Join(unresolved, ", ")).
				Build()
		}
		slog.Warn("Unresolved placeholders left in page",
			logfields.File(u.RelPath),
			slog.Any("placeholders", unresolved))
	}

	return &Page{
		RelPath:    u.OutputRelPath(),
		Lang:       u.Lang,
		HTML:       html,
		Unresolved: unresolved,
	}, nil
}

// Bindings resolves every placeholder value for u, in precedence order.
func (b *Builder) Bindings(u content.Unit) (*Bindings, error) {
	body, err := b.reader.Body(u)
	if err != nil {
		return nil, err
	}
	body = content.Indent(body, content.Pad(b.opts.ContentIndent))

	extraHead, err := b.reader.ExtraHead(u.Lang, u.Filename)
	if err != nil {
		return nil, err
	}
	extraHead = content.Indent(extraHead, content.Pad(b.opts.ExtraHeadIndent))

	extraScripts, err := b.reader.ExtraScripts(u.Lang, u.Filename)
	if err != nil {
		return nil, err
	}
	extraScripts = content.Indent(extraScripts, content.Pad(b.opts.ExtraScriptsIndent))

	alternates, err := b.alternateLinks(u)
	if err != nil {
		return nil, err
	}

	human, machine, err := b.lastModified(u)
	if err != nil {
		return nil, err
	}

	bs := NewBindings()
	for _, l := range lang.Supported() {
		bs.Bind(AlternateLinkPlaceholder(l), alternates[l])
	}
	bs.Bind(PlaceholderExtraHead, extraHead)
	bs.Bind(PlaceholderLang, u.Lang.String())
	for _, e := range b.translations.Entries(u.Lang) {
		if !bs.Bind(e.Key, e.Value) {
			slog.Debug("Translation key shadowed by reserved placeholder", logfields.Key(e.Key), logfields.Lang(u.Lang.String()))
		}
	}
	b.bindReserved(bs, PlaceholderContent, body, u)
	b.bindReserved(bs, PlaceholderLastModifiedHuman, human, u)
	b.bindReserved(bs, PlaceholderLastModifiedMachine, machine, u)
	b.bindReserved(bs, PlaceholderExtraScripts, extraScripts, u)
	return bs, nil
}

// bindReserved binds a placeholder that follows the translations; a
// translation with the same key already took it.
func (b *Builder) bindReserved(bs *Bindings, placeholder, value string, u content.Unit) {
	if !bs.Bind(placeholder, value) {
		slog.Warn("Translation key overrides reserved placeholder",
			logfields.Key(placeholder), logfields.Lang(u.Lang.String()))
	}
}

// alternateLinks maps each language to the file name of this page in it.
func (b *Builder) alternateLinks(u content.Unit) (map[lang.Lang]string, error) {
	other, err := u.Lang.Other()
	if err != nil {
		return nil, err
	}
	sibling, err := b.links.Sibling(u.Lang, u.Filename)
	if err != nil {
		return nil, err
	}
	return map[lang.Lang]string{u.Lang: u.Filename, other: sibling}, nil
}

func (b *Builder) lastModified(u content.Unit) (string, string, error) {
	when, err := b.lastmod.LastModified(u.Path)
	if err != nil {
		return "", "", err
	}
	when = when.In(b.opts.Location)
	human, err := u.Lang.FormatHuman(when)
	if err != nil {
		return "", "", err
	}
	return human, lang.FormatMachine(when), nil
}
