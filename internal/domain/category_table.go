package domain

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Надкатегории объектов
const (
	SupercatTransport     = "transport"
	SupercatConstructions = "constructions"
	SupercatNature        = "nature"
	SupercatSettlements   = "settlements"
	SupercatRoads         = "roads"
)

// ClassificationOrder - порядок просмотра надкатегорий при классификации.
// Индекс записи в таблице считается сквозным в этом порядке.
var ClassificationOrder = []string{
	SupercatTransport,
	SupercatConstructions,
	SupercatNature,
	SupercatSettlements,
	SupercatRoads,
}

// DisplayOrder - порядок категорий в упражнении
var DisplayOrder = []string{
	SupercatSettlements,
	SupercatRoads,
	SupercatNature,
	SupercatTransport,
	SupercatConstructions,
}

// IsSupercat проверяет, что название - одна из пяти надкатегорий
func IsSupercat(name string) bool {
	for _, s := range ClassificationOrder {
		if s == name {
			return true
		}
	}
	return false
}

//go:embed categories.yaml
var defaultCategoryTable []byte

const wildcardValue = "*"

// TagPattern - шаблон тега: точное key=value или key=*
type TagPattern struct {
	Key   string
	Value string
}

// IsWildcard - шаблон совпадает с любым значением ключа
func (p TagPattern) IsWildcard() bool {
	return p.Value == wildcardValue
}

// Matches проверяет совпадение тега key=value с шаблоном.
// key=* не совпадает с явным key=no.
func (p TagPattern) Matches(key, value string) bool {
	if p.Key != key {
		return false
	}
	if p.IsWildcard() {
		return value != "no"
	}
	return p.Value == value
}

// CategoryRule - подкатегория и ее шаблоны
type CategoryRule struct {
	Supercat string
	Subcat   string
	Patterns []TagPattern
}

// CategoryTable - неизменяемая упорядоченная таблица классификации
type CategoryTable struct {
	rules []CategoryRule
}

type categoryTableFile []struct {
	Supercat string `yaml:"supercat"`
	Subcats  []struct {
		Name string   `yaml:"name"`
		Tags []string `yaml:"tags"`
	} `yaml:"subcats"`
}

// DefaultCategoryTable - встроенная таблица
func DefaultCategoryTable() (*CategoryTable, error) {
	return ParseCategoryTable(defaultCategoryTable)
}

// ParseCategoryTable разбирает YAML и упорядочивает записи по ClassificationOrder
func ParseCategoryTable(data []byte) (*CategoryTable, error) {
	var file categoryTableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}

	bySupercat := make(map[string][]CategoryRule, len(file))
	for _, section := range file {
		if !IsSupercat(section.Supercat) {
			return nil, fmt.Errorf("unknown supercategory %q", section.Supercat)
		}
		if _, dup := bySupercat[section.Supercat]; dup {
			return nil, fmt.Errorf("duplicate supercategory %q", section.Supercat)
		}

		rules := make([]CategoryRule, 0, len(section.Subcats))
		for _, sub := range section.Subcats {
			if sub.Name == "" {
				return nil, fmt.Errorf("empty subcategory name in %q", section.Supercat)
			}
			rule := CategoryRule{Supercat: section.Supercat, Subcat: sub.Name}
			for _, tag := range sub.Tags {
				key, value, ok := strings.Cut(tag, "=")
				if !ok || key == "" || value == "" {
					return nil, fmt.Errorf("malformed tag pattern %q in %s/%s", tag, section.Supercat, sub.Name)
				}
				rule.Patterns = append(rule.Patterns, TagPattern{Key: key, Value: value})
			}
			rules = append(rules, rule)
		}
		bySupercat[section.Supercat] = rules
	}

	table := &CategoryTable{}
	for _, supercat := range ClassificationOrder {
		table.rules = append(table.rules, bySupercat[supercat]...)
	}
	return table, nil
}

// Rules возвращает копию записей в порядке приоритета
func (t *CategoryTable) Rules() []CategoryRule {
	out := make([]CategoryRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Classify возвращает категорию записи с наименьшим индексом, с которой совпал
// хотя бы один тег. Порядок тегов не важен.
func (t *CategoryTable) Classify(tags []Tag) (supercat, subcat string, ok bool) {
	for _, rule := range t.rules {
		for _, pattern := range rule.Patterns {
			for _, tag := range tags {
				if pattern.Matches(tag.Key, tag.Value) {
					return rule.Supercat, rule.Subcat, true
				}
			}
		}
	}
	return "", "", false
}

// Tag - тег OSM
type Tag struct {
	Key   string
	Value string
}

// ParseTag разбирает строку key=value
func ParseTag(s string) (Tag, bool) {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return Tag{}, false
	}
	return Tag{Key: key, Value: value}, true
}
