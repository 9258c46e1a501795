/*
Package server implements msgpack IPC for dictionary search services.

The server speaks binary msgpack over stdin/stdout on a request/response
model. Each message carries an ID the response echoes back, an op field
selecting the operation, and op-specific parameters.

Search requests run the cross-domain prefix search:

	{"id": "req_001", "op": "search", "q": "たくし", "d": "all", "m": "auto", "l": 20}

The server answers with ranked hits and the elapsed time in microseconds:

	{"id": "req_001", "h": [{"id": 5, "key": "たくしー", ...}], "c": 1, "t": 145}

Card requests join the canonical record with its language augmentations:

	{"id": "req_002", "op": "card", "d": "words", "cid": 1000120}

Health requests answer with a status object. Malformed or unknown
requests produce an error message with a code; the stream keeps going.
*/
package server

import (
	"github.com/bastiangx/jishoserve/pkg/card"
	"github.com/bastiangx/jishoserve/pkg/search"
)

// Request is an incoming IPC message. Fields beyond ID and Op are
// op-specific and optional.
type Request struct {
	ID          string `msgpack:"id"`
	Op          string `msgpack:"op"`
	Query       string `msgpack:"q,omitempty"`
	Domain      string `msgpack:"d,omitempty"`
	Mode        string `msgpack:"m,omitempty"`
	Limit       int    `msgpack:"l,omitempty"`
	MaxKeys     int    `msgpack:"k,omitempty"`
	CommonFirst bool   `msgpack:"cf,omitempty"`
	CardID      int64  `msgpack:"cid,omitempty"`
	Lang        string `msgpack:"lang,omitempty"`
}

// SearchResponse answers a search op.
type SearchResponse struct {
	ID        string       `msgpack:"id"`
	Hits      []search.Hit `msgpack:"h"`
	Count     int          `msgpack:"c"`
	TimeTaken int64        `msgpack:"t"`
}

// WordCardResponse answers a card op for the words domain.
type WordCardResponse struct {
	ID        string        `msgpack:"id"`
	Card      card.WordCard `msgpack:"card"`
	TimeTaken int64         `msgpack:"t"`
}

// NameCardResponse answers a card op for the names domain.
type NameCardResponse struct {
	ID        string        `msgpack:"id"`
	Card      card.NameCard `msgpack:"card"`
	TimeTaken int64         `msgpack:"t"`
}

// StatusResponse answers health checks and the initial ready banner.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
