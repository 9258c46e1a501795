package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bastiangx/jishoserve/pkg/card"
	"github.com/bastiangx/jishoserve/pkg/search"
)

var (
	searchDomain      string
	searchMode        string
	searchLimit       int
	searchMaxKeys     int
	searchCommonFirst bool
	searchDetails     bool
	searchLang        string
	searchFormat      string
)

// searchResult is a hit with its optional attached card for JSON output.
type searchResult struct {
	search.Hit
	Card any `json:"card,omitempty"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search-as-you-type (prefix) over words and/or names",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}

		opts := search.Options{
			Limit:       searchLimit,
			MaxKeys:     searchMaxKeys,
			CommonFirst: searchCommonFirst,
		}
		if opts.Limit < 1 {
			opts.Limit = a.cfg.Search.DefaultLimit
		}
		if opts.MaxKeys < 1 {
			opts.MaxKeys = a.cfg.Search.MaxKeys
		}

		hits, err := a.engine.MergeSearch(searchDomain, searchMode, args[0], opts)
		if err != nil {
			return err
		}

		if searchFormat == "json" {
			out := make([]searchResult, 0, len(hits))
			for _, hit := range hits {
				res := searchResult{Hit: hit}
				if searchDetails {
					if res.Card, err = a.cardFor(hit); err != nil {
						return err
					}
				}
				out = append(out, res)
			}
			return printJSON(out)
		}

		for _, hit := range hits {
			line, err := a.describeHit(hit)
			if err != nil {
				return err
			}
			fmt.Println(line)
		}
		return nil
	},
}

func (a *app) cardFor(hit search.Hit) (any, error) {
	if hit.Domain == search.DomainWords {
		return a.assembler.Word(hit.ID, searchLang)
	}
	return a.assembler.Name(hit.ID)
}

// describeHit renders a hit the way the text output formats it:
// [domain] key -> written【reading】 id=N first-gloss.
func (a *app) describeHit(hit search.Hit) (string, error) {
	var written, reading, gloss string
	switch hit.Domain {
	case search.DomainWords:
		c, err := a.assembler.Word(hit.ID, searchLang)
		if err != nil {
			return "", err
		}
		written, reading = c.Primary.Written, c.Primary.Reading
		gloss = firstWordGloss(c, searchLang)
	case search.DomainNames:
		c, err := a.assembler.Name(hit.ID)
		if err != nil {
			return "", err
		}
		written, reading = c.Primary.Written, c.Primary.Reading
		for _, t := range c.TranslationsEN {
			if len(t.Gloss) > 0 {
				gloss = t.Gloss[0]
				break
			}
		}
	}
	label := "word"
	if hit.Domain == search.DomainNames {
		label = "name"
	}
	return fmt.Sprintf("[%s] %s -> %s【%s】 id=%d %s", label, hit.MatchedKey, written, reading, hit.ID, gloss), nil
}

func firstWordGloss(c card.WordCard, lang string) string {
	for _, s := range c.Senses {
		if lang == "it" && len(s.GlossIT) > 0 {
			return s.GlossIT[0]
		}
		if len(s.GlossEN) > 0 {
			return s.GlossEN[0]
		}
	}
	return ""
}

func init() {
	searchCmd.Flags().StringVar(&searchDomain, "domain", "all", "domain: words, names or all")
	searchCmd.Flags().StringVar(&searchMode, "mode", "auto", "indexed field: surface, reading or auto")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "max results (0 = config default)")
	searchCmd.Flags().IntVar(&searchMaxKeys, "max-keys", 0, "max matched keys to scan per variant (performance guard)")
	searchCmd.Flags().BoolVar(&searchCommonFirst, "common-first", false, "prefer common words (by rank/common)")
	searchCmd.Flags().BoolVar(&searchDetails, "details", false, "attach entry cards to each result")
	searchCmd.Flags().StringVar(&searchLang, "lang", "it", "preferred gloss language for word cards")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "output format: text or json")
	rootCmd.AddCommand(searchCmd)
}
