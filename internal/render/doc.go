// Package render assembles pages from the shared template.
//
// A template is plain HTML containing placeholders written exactly as
// "{{ name }}". The template is parsed once into literal and placeholder
// segments; rendering a page walks those segments a single time and swaps
// each placeholder for its bound value. Values are never re-scanned, so a
// fragment that happens to contain "{{ lang }}" is emitted verbatim.
//
// Bindings are ordered. When two bindings claim the same placeholder (a
// translation key named "content", say) the earlier one wins. The order is:
//
//	alternate_link_en, alternate_link_fr, extra_head, lang,
//	translation keys (sorted), content,
//	last_modified_human, last_modified_machine, extra_scripts
package render
