package server

import (
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/jishoserve/pkg/card"
	"github.com/bastiangx/jishoserve/pkg/config"
	"github.com/bastiangx/jishoserve/pkg/search"
)

// Server handles the IPC for dictionary search and card assembly.
type Server struct {
	engine    *search.Engine
	assembler *card.Assembler
	cfg       *config.Config
	dec       *msgpack.Decoder
	enc       *msgpack.Encoder
}

// New creates a search server over the given reader/writer pair.
// Production use passes stdin/stdout; tests pass buffers.
func New(engine *search.Engine, assembler *card.Assembler, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:    engine,
		assembler: assembler,
		cfg:       cfg,
		dec:       msgpack.NewDecoder(r),
		enc:       msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests. It returns nil on EOF.
func (s *Server) Start() error {
	log.Debug("starting IPC server")
	s.send(StatusResponse{Status: "ready"})

	for {
		var req Request
		if err := s.dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Op {
	case "search":
		s.handleSearch(req)
	case "card":
		s.handleCard(req)
	case "health":
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown op: %s", req.Op), 400)
	}
}

func (s *Server) handleSearch(req Request) {
	n := utf8.RuneCountInString(req.Query)
	if n < s.cfg.Server.MinQuery {
		s.sendError(req.ID, "query too short", 400)
		return
	}
	if n > s.cfg.Server.MaxQuery {
		s.sendError(req.ID, "query too long", 400)
		return
	}

	opts := search.Options{
		Limit:       req.Limit,
		MaxKeys:     req.MaxKeys,
		CommonFirst: req.CommonFirst,
	}
	if opts.Limit < 1 {
		opts.Limit = s.cfg.Search.DefaultLimit
	}
	if opts.Limit > s.cfg.Server.MaxLimit {
		opts.Limit = s.cfg.Server.MaxLimit
	}
	if opts.MaxKeys < 1 {
		opts.MaxKeys = s.cfg.Search.MaxKeys
	}

	domain := req.Domain
	if domain == "" {
		domain = search.DomainAll
	}
	mode := req.Mode
	if mode == "" {
		mode = search.ModeAuto
	}

	start := time.Now()
	hits, err := s.engine.MergeSearch(domain, mode, req.Query, opts)
	if err != nil {
		log.Errorf("search failed: %v", err)
		s.sendError(req.ID, err.Error(), 500)
		return
	}

	s.send(SearchResponse{
		ID:        req.ID,
		Hits:      hits,
		Count:     len(hits),
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) handleCard(req Request) {
	lang := req.Lang
	if lang == "" {
		lang = s.cfg.Cards.Lang
	}

	start := time.Now()
	switch req.Domain {
	case search.DomainWords:
		c, err := s.assembler.Word(req.CardID, lang)
		if err != nil {
			s.sendError(req.ID, err.Error(), 500)
			return
		}
		s.send(WordCardResponse{ID: req.ID, Card: c, TimeTaken: time.Since(start).Microseconds()})
	case search.DomainNames:
		c, err := s.assembler.Name(req.CardID)
		if err != nil {
			s.sendError(req.ID, err.Error(), 500)
			return
		}
		s.send(NameCardResponse{ID: req.ID, Card: c, TimeTaken: time.Since(start).Microseconds()})
	default:
		s.sendError(req.ID, fmt.Sprintf("unknown card domain: %s", req.Domain), 400)
	}
}

func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
