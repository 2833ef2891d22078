package repository

import (
	"strings"

	"gorm.io/gorm"
)

// ListFilter 列表查询条件
type ListFilter struct {
	Search   string // 空格分隔的多个关键词，每个关键词需命中任一搜索字段
	Ordering string // 形如 name 或 -created_at，不在白名单内时使用默认排序
}

// orderSpec 排序白名单与默认排序
type orderSpec struct {
	allowed map[string]bool
	def     string
}

func newOrderSpec(def string, fields ...string) orderSpec {
	allowed := make(map[string]bool, len(fields))
	for _, f := range fields {
		allowed[f] = true
	}
	return orderSpec{allowed: allowed, def: def}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// applySearch 大小写不敏感的子串搜索
// columns 必须为代码内常量，不可来自请求
func applySearch(db *gorm.DB, search string, columns ...string) *gorm.DB {
	for _, term := range strings.Fields(search) {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]interface{}, 0, len(columns))
		for _, col := range columns {
			conds = append(conds, "LOWER("+col+`) LIKE ? ESCAPE '\'`)
			args = append(args, pattern)
		}
		db = db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	return db
}

// applyOrdering 按白名单排序，逗号分隔多个字段
func applyOrdering(db *gorm.DB, ordering string, spec orderSpec) *gorm.DB {
	var clauses []string
	for _, raw := range strings.Split(ordering, ",") {
		field := strings.TrimSpace(raw)
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			field, dir = field[1:], "DESC"
		}
		if spec.allowed[field] {
			clauses = append(clauses, field+" "+dir)
		}
	}
	if len(clauses) == 0 {
		return db.Order(spec.def)
	}
	return db.Order(strings.Join(clauses, ", "))
}
