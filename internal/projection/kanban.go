package projection

import (
	"sort"

	"github.com/ianroy/makerflowPM/internal/models"
	"github.com/ianroy/makerflowPM/internal/viewconfig"
)

// KanbanItem is a card or a group separator inside a column
type KanbanItem struct {
	Separator bool
	Group     string
	Record    *models.Record
}

// KanbanColumn is one status column
type KanbanColumn struct {
	Status       string
	Label        string
	Color        string
	Description  string
	Collapsed    bool
	RestrictEdit bool
	MuteAssign   bool // cards hide their assignees
	Filter       string
	Sort         viewconfig.SortDir
	Count        int // visible cards, separators excluded
	Items        []KanbanItem
}

// Cards returns the records of the column without separators
func (c KanbanColumn) Cards() []*models.Record {
	out := make([]*models.Record, 0, c.Count)
	for _, it := range c.Items {
		if !it.Separator {
			out = append(out, it.Record)
		}
	}
	return out
}

// KanbanView is the status-grouped layout of a board
type KanbanView struct {
	Columns      []KanbanColumn
	VisibleCount int
}

// Column returns the rendered column of a status
func (v KanbanView) Column(status string) (KanbanColumn, bool) {
	for _, c := range v.Columns {
		if c.Status == status {
			return c, true
		}
	}
	return KanbanColumn{}, false
}

// VisibleIDs returns the ids of every rendered card
func (v KanbanView) VisibleIDs() []int64 {
	var ids []int64
	for _, c := range v.Columns {
		for _, rec := range c.Cards() {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

// Kanban projects the board into one column per status. Hidden and
// restrict-view statuses get no column; collapsed ones are rendered
// minimized but still counted.
func Kanban(in Input) KanbanView {
	byStatus := make(map[string][]*models.Record, len(in.Statuses))
	for _, rec := range in.Records {
		if !in.boardVisible(rec) {
			continue
		}
		byStatus[rec.Status()] = append(byStatus[rec.Status()], rec)
	}

	var view KanbanView
	for _, status := range in.Statuses {
		entry := in.Config.Status(status)
		if entry == nil {
			entry = &viewconfig.Entry{}
		}
		if entry.Hidden || entry.RestrictView {
			continue
		}

		col := KanbanColumn{
			Status:       status,
			Label:        status,
			Color:        entry.Color,
			Description:  entry.Description,
			Collapsed:    entry.Collapsed,
			RestrictEdit: entry.RestrictEdit,
			MuteAssign:   entry.MuteAssign,
			Filter:       entry.Filter,
			Sort:         entry.Sort,
		}
		if entry.Alias != "" {
			col.Label = entry.Alias
		}

		cards := make([]*models.Record, 0, len(byStatus[status]))
		for _, rec := range byStatus[status] {
			if matches(in.searchText(rec), entry.Filter) {
				cards = append(cards, rec)
			}
		}

		if entry.Sort != viewconfig.SortNone {
			key := entry.SortField
			if key == "" {
				key = in.Schema.TitleField
			}
			desc := entry.Sort == viewconfig.SortDesc
			sort.SliceStable(cards, func(i, j int) bool {
				c := Compare(cards[i].Get(key), cards[j].Get(key))
				if desc {
					return c > 0
				}
				return c < 0
			})
		}

		col.Items = make([]KanbanItem, 0, len(cards))
		for _, rec := range cards {
			col.Items = append(col.Items, KanbanItem{Record: rec})
		}
		if entry.GroupBy != "" {
			groupKey := entry.GroupBy
			col.Items = groupRuns(col.Items,
				func(it KanbanItem) string { return it.Record.Get(groupKey) },
				func(g string) KanbanItem { return KanbanItem{Separator: true, Group: g} },
			)
		}

		col.Count = len(cards)
		view.VisibleCount += col.Count
		view.Columns = append(view.Columns, col)
	}
	return view
}

// DropTarget reports whether a card may be dropped on status. Hidden,
// restrict-view and restrict-edit statuses refuse drops, as do statuses
// outside the kind's set.
func DropTarget(in Input, status string) bool {
	if !in.hasStatus(status) {
		return false
	}
	e := in.Config.Status(status)
	if e == nil {
		return true
	}
	return !e.Hidden && !e.RestrictView && !e.RestrictEdit
}

// CardEditable reports whether a field control on a card in status is enabled
func CardEditable(in Input, status, fieldKey string) bool {
	if !in.Permissions.CanEdit {
		return false
	}
	if e := in.Config.Status(status); e != nil && e.RestrictEdit {
		return false
	}
	f, ok := in.Schema.Field(fieldKey)
	return ok && !f.ReadOnly
}
