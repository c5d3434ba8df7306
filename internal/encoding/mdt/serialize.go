package mdt

import (
	"sort"
	"strconv"
	"strings"

	"github.com/veyra/wcl2mdt/internal/domain/model"
)

// formatVersion is the value of the "version" field inside the serialized
// table. It identifies the table layout, independent of the outer header.
const formatVersion = 2

// serialize renders a plan as the Lua table literal the addon's decoder
// expects. Output is canonical: pulls in plan order under ascending 1-based
// keys, npc entries sorted by catalog index ascending, no whitespace.
// Byte-identical plans always yield byte-identical text.
func serialize(p model.PullPlan) string {
	var b strings.Builder
	b.WriteString(`{["pulls"]={`)
	for i, pull := range p.Pulls {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(`]={["npcs"]={`)

		indices := make([]int, 0, len(pull))
		for idx := range pull {
			indices = append(indices, idx)
		}
		sort.Ints(indices)
		for j, idx := range indices {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(`{["id"]=`)
			b.WriteString(strconv.Itoa(idx))
			b.WriteString(`,["count"]=`)
			b.WriteString(strconv.Itoa(pull[idx]))
			b.WriteByte('}')
		}
		b.WriteString(`}}`)
	}
	b.WriteString(`},["dungeon"]=`)
	b.WriteString(strconv.Itoa(p.Dungeon))
	b.WriteString(`,["week"]=`)
	b.WriteString(strconv.Itoa(p.Week))
	b.WriteString(`,["version"]=`)
	b.WriteString(strconv.Itoa(formatVersion))
	b.WriteString(`,["name"]=`)
	b.WriteString(quote(p.Name))
	b.WriteByte('}')
	return b.String()
}

// quote renders s as a Lua short string literal.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
