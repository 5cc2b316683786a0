package schema

import (
	"strings"
)

// Command 定义视图的查询
type Command interface {
	SQL() string
	ClearOrderBy()
	Clone() Command
}

// Select 简单的 SELECT 语句，各部分都是已经渲染好的 SQL 片段
type Select struct {
	selects []string
	from    []string
	where   []string
	groupBy []string
	having  []string
	orderBy []string
}

func NewSelect(exprs ...string) *Select {
	return &Select{selects: exprs}
}

func (s *Select) Select(exprs ...string) *Select {
	s.selects = append(s.selects, exprs...)
	return s
}

func (s *Select) From(tables ...string) *Select {
	s.from = append(s.from, tables...)
	return s
}

// Where 多个条件用 AND 连接
func (s *Select) Where(conditions ...string) *Select {
	s.where = append(s.where, conditions...)
	return s
}

func (s *Select) GroupBy(exprs ...string) *Select {
	s.groupBy = append(s.groupBy, exprs...)
	return s
}

func (s *Select) Having(conditions ...string) *Select {
	s.having = append(s.having, conditions...)
	return s
}

func (s *Select) OrderBy(exprs ...string) *Select {
	s.orderBy = append(s.orderBy, exprs...)
	return s
}

func (s *Select) HasOrderBy() bool {
	return len(s.orderBy) > 0
}

func (s *Select) ClearOrderBy() {
	s.orderBy = nil
}

func (s *Select) Clone() Command {
	return &Select{
		selects: append([]string(nil), s.selects...),
		from:    append([]string(nil), s.from...),
		where:   append([]string(nil), s.where...),
		groupBy: append([]string(nil), s.groupBy...),
		having:  append([]string(nil), s.having...),
		orderBy: append([]string(nil), s.orderBy...),
	}
}

func (s *Select) SQL() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(s.selects) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(s.selects, ", "))
	}
	if len(s.from) > 0 {
		sb.WriteString(" FROM ")
		sb.WriteString(strings.Join(s.from, ", "))
	}
	if len(s.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(s.where, " AND "))
	}
	if len(s.groupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(s.groupBy, ", "))
	}
	if len(s.having) > 0 {
		sb.WriteString(" HAVING ")
		sb.WriteString(strings.Join(s.having, " AND "))
	}
	if len(s.orderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(s.orderBy, ", "))
	}
	return sb.String()
}
