package mdt

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"strings"

	lua "github.com/Shopify/go-lua"

	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// Decode inverts Encode: printable decode, DEFLATE decompress, then parse
// the table text. The consumer of these strings is a Lua addon, so the
// payload is evaluated in an embedded Lua interpreter and the resulting
// table walked; a string either is a valid Lua table of the expected shape
// or decoding fails as a whole.
func Decode(s string) (model.PullPlan, error) {
	if !strings.HasPrefix(s, header) {
		return model.PullPlan{}, fmt.Errorf("%w: missing %q format header", ErrDecode, header)
	}

	compressed, err := decodeForPrint(s[len(header):])
	if err != nil {
		return model.PullPlan{}, err
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	text, err := io.ReadAll(r)
	if err != nil {
		return model.PullPlan{}, fmt.Errorf("%w: decompress: %v", ErrDecode, err)
	}
	if err := r.Close(); err != nil {
		return model.PullPlan{}, fmt.Errorf("%w: decompress: %v", ErrDecode, err)
	}

	return parsePlan(string(text))
}

// parsePlan evaluates the table literal and extracts the plan. No Lua
// libraries are opened; the payload is a single table constructor with
// nothing to call.
func parsePlan(text string) (model.PullPlan, error) {
	l := lua.NewState()
	if err := lua.DoString(l, "return "+text); err != nil {
		return model.PullPlan{}, fmt.Errorf("%w: payload is not a Lua table: %v", ErrDecode, err)
	}
	if l.TypeOf(-1) != lua.TypeTable {
		return model.PullPlan{}, fmt.Errorf("%w: payload did not evaluate to a table", ErrDecode)
	}
	root := l.Top()

	version, ok := tableInt(l, root, "version")
	if !ok || version != formatVersion {
		return model.PullPlan{}, fmt.Errorf("%w: unsupported table version %d", ErrDecode, version)
	}

	var p model.PullPlan
	if p.Dungeon, ok = tableInt(l, root, "dungeon"); !ok {
		return model.PullPlan{}, fmt.Errorf("%w: missing dungeon field", ErrDecode)
	}
	if p.Week, ok = tableInt(l, root, "week"); !ok {
		return model.PullPlan{}, fmt.Errorf("%w: missing week field", ErrDecode)
	}
	if p.Name, ok = tableString(l, root, "name"); !ok {
		return model.PullPlan{}, fmt.Errorf("%w: missing name field", ErrDecode)
	}

	l.Field(root, "pulls")
	pullsIdx := l.Top()
	if l.TypeOf(pullsIdx) != lua.TypeTable {
		return model.PullPlan{}, fmt.Errorf("%w: missing pulls table", ErrDecode)
	}
	count := l.RawLength(pullsIdx)
	p.Pulls = make([]model.PullComposition, 0, count)
	for i := 1; i <= count; i++ {
		l.RawGetInt(pullsIdx, i)
		pullIdx := l.Top()
		comp, err := parsePull(l, pullIdx, i)
		if err != nil {
			return model.PullPlan{}, err
		}
		p.Pulls = append(p.Pulls, comp)
		l.Pop(1)
	}

	return p, nil
}

// parsePull extracts one pull's npcs list into a composition map.
func parsePull(l *lua.State, pullIdx, pos int) (model.PullComposition, error) {
	if l.TypeOf(pullIdx) != lua.TypeTable {
		return nil, fmt.Errorf("%w: pull %d is not a table", ErrDecode, pos)
	}
	l.Field(pullIdx, "npcs")
	npcsIdx := l.Top()
	defer l.Pop(1)
	if l.TypeOf(npcsIdx) != lua.TypeTable {
		return nil, fmt.Errorf("%w: pull %d has no npcs table", ErrDecode, pos)
	}

	comp := make(model.PullComposition)
	count := l.RawLength(npcsIdx)
	for j := 1; j <= count; j++ {
		l.RawGetInt(npcsIdx, j)
		entryIdx := l.Top()
		id, okID := tableInt(l, entryIdx, "id")
		n, okCount := tableInt(l, entryIdx, "count")
		l.Pop(1)
		if !okID || !okCount {
			return nil, fmt.Errorf("%w: pull %d entry %d lacks id/count", ErrDecode, pos, j)
		}
		comp[id] = n
	}
	return comp, nil
}

// tableInt reads an integer field from the table at index tbl.
func tableInt(l *lua.State, tbl int, key string) (int, bool) {
	l.Field(tbl, key)
	v, ok := l.ToInteger(-1)
	l.Pop(1)
	return v, ok
}

// tableString reads a string field from the table at index tbl.
func tableString(l *lua.State, tbl int, key string) (string, bool) {
	l.Field(tbl, key)
	v, ok := l.ToString(-1)
	l.Pop(1)
	return v, ok
}
