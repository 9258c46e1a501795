/*
Jishoserve provides search-as-you-type lookup over a multilingual
dictionary dataset: words, proper names, kanji, kana and topical
categories, indexed by surface form and reading.

Queries are normalized (NFKC, case folding, fullwidth bridging, kana
folding), classified into a script bucket, and run as prefix scans over
pre-built sorted index shards. Results are ranked by exactness,
commonness and rank score, merged across domains and modes, and joined
on demand into denormalized entry cards.

# Usage

Search from the command line against a dataset checkout:

	jishoserve --repo-root /path/to/dataset search タクシー --common-first

Fetch a single card:

	jishoserve --repo-root /path/to/dataset word --id 1358280

Run the msgpack IPC server for editor or app integration:

	jishoserve --repo-root /path/to/dataset serve

Or poke at the index interactively:

	jishoserve --repo-root /path/to/dataset cli

# Configuration

Runtime defaults live in an optional TOML file at
~/.config/jishoserve/config.toml:

	[search]
	default_limit = 20
	max_keys = 250

	[cards]
	lang = "it"

	[cache]
	shards = 32
	word_chunks = 4

The dataset tree itself is immutable: jishoserve only ever reads it.
*/
package main

import (
	"os"

	"github.com/bastiangx/jishoserve/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
