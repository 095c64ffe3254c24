package docparser

import "sort"

// VoidType is the raw type recorded for members whose header carries no
// property or return annotation.
const VoidType = "void"

// Parameter is one row of a member's parameter table.
type Parameter struct {
	Name        string
	Type        string // raw documentation type, e.g. "Array.<number>"
	Description string
}

// MemberInfo describes a single method or property found on a class page.
type MemberInfo struct {
	ID                string // anchor id of the member header
	Name              string
	Parameters        []Parameter
	ReturnType        string
	ReturnDescription string
	Description       string
	InheritedFrom     string // ancestor class name when the member is a reference
	IsStatic          bool
	IsProperty        bool
}

// IsInherited reports whether the member only references an ancestor's definition.
func (m MemberInfo) IsInherited() bool {
	return m.InheritedFrom != ""
}

// ClassInfo is the model built from one class page.
type ClassInfo struct {
	Name        string
	Description string
	Extends     string
	Members     map[string]MemberInfo
}

// NewClassInfo returns an empty class model.
func NewClassInfo(name string) *ClassInfo {
	return &ClassInfo{
		Name:    name,
		Members: make(map[string]MemberInfo),
	}
}

// SortedMembers returns every member in ascending name order.
func (c *ClassInfo) SortedMembers() []MemberInfo {
	members := make([]MemberInfo, 0, len(c.Members))
	for _, m := range c.Members {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		return members[i].Name < members[j].Name
	})
	return members
}

// OwnMembers returns the non-inherited members in ascending name order.
func (c *ClassInfo) OwnMembers() []MemberInfo {
	all := c.SortedMembers()
	own := all[:0]
	for _, m := range all {
		if !m.IsInherited() {
			own = append(own, m)
		}
	}
	return own
}

// SortClasses orders classes by name in place.
func SortClasses(classes []*ClassInfo) {
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].Name < classes[j].Name
	})
}
