// Package cli provides a simple interactive input handler for exercising
// the search pipeline in real time.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/jishoserve/pkg/card"
	"github.com/bastiangx/jishoserve/pkg/search"
)

var (
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	readingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	commonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	domainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("108"))
)

// InputHandler reads queries from stdin and renders ranked hits.
type InputHandler struct {
	engine    *search.Engine
	assembler *card.Assembler
	domain    string
	mode      string
	lang      string
	opts      search.Options
}

// NewInputHandler creates the interactive prompt.
func NewInputHandler(engine *search.Engine, assembler *card.Assembler, domain, mode, lang string, opts search.Options) *InputHandler {
	return &InputHandler{
		engine:    engine,
		assembler: assembler,
		domain:    domain,
		mode:      mode,
		lang:      lang,
		opts:      opts,
	}
}

// Start begins the input loop.
func (h *InputHandler) Start() error {
	log.Print("jishoserve interactive search")
	log.Print("type a query, press enter to search (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		h.handleQuery(query)
	}
}

func (h *InputHandler) handleQuery(query string) {
	start := time.Now()
	hits, err := h.engine.MergeSearch(h.domain, h.mode, query, h.opts)
	elapsed := time.Since(start)
	if err != nil {
		log.Errorf("search failed: %v", err)
		return
	}
	if len(hits) == 0 {
		log.Warnf("no results for %q", query)
		return
	}

	log.Printf("%d results for %q in %v:", len(hits), query, elapsed)
	for i, hit := range hits {
		fmt.Println(h.renderHit(i+1, hit))
	}
}

func (h *InputHandler) renderHit(pos int, hit search.Hit) string {
	written, reading, gloss := h.describe(hit)

	var b strings.Builder
	fmt.Fprintf(&b, "%2d. %s %s", pos, domainStyle.Render("["+hit.Domain+"]"), keyStyle.Render(hit.MatchedKey))
	if written != "" || reading != "" {
		fmt.Fprintf(&b, " -> %s%s", written, readingStyle.Render("【"+reading+"】"))
	}
	fmt.Fprintf(&b, " %s", idStyle.Render(fmt.Sprintf("id=%d", hit.ID)))
	if hit.Common {
		fmt.Fprintf(&b, " %s", commonStyle.Render("★"))
	}
	if gloss != "" {
		fmt.Fprintf(&b, "  %s", gloss)
	}
	return b.String()
}

// describe joins the card for a hit, best-effort: a card failure only
// loses the annotation, never the hit.
func (h *InputHandler) describe(hit search.Hit) (written, reading, gloss string) {
	switch hit.Domain {
	case search.DomainWords:
		c, err := h.assembler.Word(hit.ID, h.lang)
		if err != nil || c.Error != "" {
			return "", "", ""
		}
		for _, s := range c.Senses {
			if gloss = firstGloss(s.GlossIT, s.GlossEN); gloss != "" {
				break
			}
		}
		return c.Primary.Written, c.Primary.Reading, gloss
	case search.DomainNames:
		c, err := h.assembler.Name(hit.ID)
		if err != nil || c.Error != "" {
			return "", "", ""
		}
		for _, t := range c.TranslationsEN {
			if len(t.Gloss) > 0 {
				gloss = t.Gloss[0]
				break
			}
		}
		return c.Primary.Written, c.Primary.Reading, gloss
	}
	return "", "", ""
}

func firstGloss(lists ...[]string) string {
	for _, l := range lists {
		if len(l) > 0 {
			return l[0]
		}
	}
	return ""
}
