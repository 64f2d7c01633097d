package check

import (
	"fmt"
	"strconv"
	"strings"
)

// MissRecord is one rendered line of miss.log. Table and index misses use
// different literal formats and downstream readers depend on both.
// TODO: unify the table miss format once consumers accept key/src_sql lines.
type MissRecord interface {
	Line() string
}

// TableMiss renders as a one-element list of (key, sql) tuples.
type TableMiss struct{ Miss }

func (m TableMiss) Line() string {
	return fmt.Sprintf("[(%s, %s)]", strconv.Quote(m.Key.String()), strconv.Quote(m.SrcSQL))
}

// IndexMiss renders as key/src_sql pair.
type IndexMiss struct{ Miss }

func (m IndexMiss) Line() string {
	return fmt.Sprintf("key: %s, src_sql: %s", m.Key, oneLine(m.SrcSQL))
}

func NewMissRecord(m Miss) MissRecord {
	if m.Key.Kind == KindTable {
		return TableMiss{m}
	}
	return IndexMiss{m}
}

// DiffLines renders the src line followed by the dst line.
func DiffLines(d Diff) [2]string {
	return [2]string{
		fmt.Sprintf("key: %s, src_sql: %s", d.Key, oneLine(d.SrcSQL)),
		fmt.Sprintf("key: %s, dst_sql: %s", d.Key, oneLine(d.DstSQL)),
	}
}

func ExtraLine(e Extra) string {
	return fmt.Sprintf("key: %s, dst_sql: %s", e.Key, oneLine(e.DstSQL))
}

// Every record is one line; line breaks inside SQL are written as \n and \r.
var lineBreaks = strings.NewReplacer("\r", `\r`, "\n", `\n`)

func oneLine(sql string) string {
	return lineBreaks.Replace(sql)
}
