// Package tables loads the per-language lookup tables shared by every page of
// a build: translated strings and alternate-language file names.
//
// Both files map a language code to a flat string map:
//
//	# translations.yml
//	en:
//	  nav_home: Home
//	fr:
//	  nav_home: Accueil
//
//	# alternate-links.yml
//	fr:
//	  accueil.html: index.html
//	en:
//	  index.html: accueil.html
//
// YAML (.yml, .yaml) and TOML (.toml) files are accepted. Tables are loaded
// once per build and never mutated afterwards.
package tables
