// FILE: tracekit/src/internal/snapshot/codec.go
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fastjson"

	"tracekit/src/internal/core"
)

// encodeEntries renders entries as a single JSON array document with a
// trailing newline.
func encodeEntries(entries []core.LogEntry) ([]byte, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return append(data, '\n'), nil
}

// decodeEntries parses a snapshot document. Anything that is not a JSON
// array of well-formed entries fails with ErrDecode; a snapshot is either
// fully decoded or rejected whole.
func decodeEntries(data []byte) ([]core.LogEntry, error) {
	var p fastjson.Parser
	root, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	items, err := root.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrDecode)
	}

	entries := make([]core.LogEntry, 0, len(items))
	for i, item := range items {
		entry, err := decodeEntry(item)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrDecode, i, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func decodeEntry(v *fastjson.Value) (core.LogEntry, error) {
	var e core.LogEntry

	if v.Type() != fastjson.TypeObject {
		return e, fmt.Errorf("value is not an object")
	}

	ts := v.GetStringBytes("time")
	if ts == nil {
		return e, fmt.Errorf("missing time")
	}
	t, err := time.Parse(time.RFC3339Nano, string(ts))
	if err != nil {
		return e, fmt.Errorf("bad time: %v", err)
	}
	e.Time = t

	lvl := v.GetStringBytes("level")
	if lvl == nil {
		return e, fmt.Errorf("missing level")
	}
	level, err := core.ParseLevel(string(lvl))
	if err != nil {
		return e, fmt.Errorf("bad level: %v", err)
	}
	e.Level = level

	msg := v.Get("message")
	if msg == nil {
		return e, fmt.Errorf("missing message")
	}
	msgBytes, err := msg.StringBytes()
	if err != nil {
		return e, fmt.Errorf("bad message: %v", err)
	}
	e.Message = string(msgBytes)

	e.ID = string(v.GetStringBytes("id"))
	e.Category = string(v.GetStringBytes("category"))
	e.File = string(v.GetStringBytes("file"))
	e.Function = string(v.GetStringBytes("function"))
	e.Line = v.GetInt("line")

	if f := v.Get("fields"); f != nil && f.Type() != fastjson.TypeNull {
		if f.Type() != fastjson.TypeObject {
			return e, fmt.Errorf("fields is not an object")
		}
		fields := make(map[string]any)
		if err := json.Unmarshal(f.MarshalTo(nil), &fields); err != nil {
			return e, fmt.Errorf("bad fields: %v", err)
		}
		e.Fields = fields
	}

	return e, nil
}
