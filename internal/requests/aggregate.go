package requests

import (
	"sort"
	"strings"
	"time"

	"github.com/crestviewems/supplyline-backend/internal/catalog"
	"github.com/crestviewems/supplyline-backend/internal/resolution"
	"github.com/crestviewems/supplyline-backend/pkg/db/models"
	"github.com/crestviewems/supplyline-backend/pkg/enums"
)

// Literal status buckets in the vendor view. Ordered/Backordered requests are
// tracked by what is in flight, not by who it went to.
const (
	GroupKeyOrdered     = "Ordered"
	GroupKeyBackordered = "Backordered"
)

// ViewFilter selects which requests a view renders.
type ViewFilter struct {
	// History selects received/completed/closed requests instead of active
	// ones.
	History bool
	// Status narrows the active view to a single status. Ignored for history.
	Status *enums.RequestStatus
	// Since narrows the history view to a trailing window. Ignored for the
	// active view.
	Since *time.Time
}

func (f ViewFilter) match(req models.Request) bool {
	if f.History {
		if !req.Status.IsHistory() {
			return false
		}
		if f.Since != nil {
			at := req.UpdatedAt
			if req.ReceivedAt != nil {
				at = *req.ReceivedAt
			}
			if at.Before(*f.Since) {
				return false
			}
		}
		return true
	}
	if req.Status.IsHistory() {
		return false
	}
	if f.Status != nil && req.Status != *f.Status {
		return false
	}
	return true
}

// buildEntry resolves one request against the index. The second return is
// false for orphaned requests, which are silently excluded from every view.
func buildEntry(idx *catalog.Index, req models.Request) (Entry, bool) {
	entry := Entry{Request: req}

	switch {
	case req.CatalogID != nil:
		item, ok := idx.Item(*req.CatalogID)
		if !ok {
			return Entry{}, false
		}
		entry.ItemName = item.ItemName
		entry.Prices = resolution.Quotes(idx, item.ID)
	case req.OtherItemName != nil:
		entry.ItemName = *req.OtherItemName
	}

	entry.Resolution = resolution.ResolveRequest(idx, req)
	return entry, true
}

// ListByItem renders the item-oriented view: entries sorted by
// case-insensitive item name, then by status rank.
func ListByItem(idx *catalog.Index, reqs []models.Request, filter ViewFilter) []Entry {
	entries := make([]Entry, 0, len(reqs))
	for _, req := range reqs {
		if !filter.match(req) {
			continue
		}
		entry, ok := buildEntry(idx, req)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ni := strings.ToLower(entries[i].ItemName)
		nj := strings.ToLower(entries[j].ItemName)
		if ni != nj {
			return ni < nj
		}
		return entries[i].Request.Status.Rank() < entries[j].Request.Status.Rank()
	})
	return entries
}

// BoardByVendor renders the vendor-oriented board over the active requests.
// Group key precedence: Ordered/Backordered requests land in their literal
// status bucket; everything else groups under the override vendor if pinned,
// else the resolved vendor, else the unassigned sentinel.
func BoardByVendor(idx *catalog.Index, reqs []models.Request) []Group {
	byKey := map[string]*Group{}
	var keyOrder []string

	for _, req := range reqs {
		if req.Status.IsHistory() {
			continue
		}
		entry, ok := buildEntry(idx, req)
		if !ok {
			continue
		}

		key, label := groupKeyFor(idx, req, entry.Resolution)
		group, exists := byKey[key]
		if !exists {
			group = &Group{Key: key, Label: label}
			byKey[key] = group
			keyOrder = append(keyOrder, key)
		}
		group.Entries = append(group.Entries, entry)
	}

	for _, group := range byKey {
		sortGroupEntries(group.Entries)
	}

	return orderGroups(byKey, keyOrder)
}

func groupKeyFor(idx *catalog.Index, req models.Request, res resolution.Resolution) (key string, label string) {
	switch req.Status {
	case enums.RequestStatusOrdered:
		return GroupKeyOrdered, GroupKeyOrdered
	case enums.RequestStatusBackordered:
		return GroupKeyBackordered, GroupKeyBackordered
	}

	if req.OverrideVendorID != nil {
		return req.OverrideVendorID.String(), idx.VendorName(*req.OverrideVendorID)
	}
	if res.VendorID == nil {
		return resolution.UnassignedKey, resolution.UnassignedName
	}
	return res.VendorID.String(), res.VendorName
}

// sortGroupEntries orders one bucket: status rank first, then FIFO by
// creation time within a status.
func sortGroupEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri := entries[i].Request.Status.Rank()
		rj := entries[j].Request.Status.Rank()
		if ri != rj {
			return ri < rj
		}
		return entries[i].Request.CreatedAt.Before(entries[j].Request.CreatedAt)
	})
}

// orderGroups renders concrete vendor groups alphabetically, then the
// unassigned sentinel, then the Ordered and Backordered buckets.
func orderGroups(byKey map[string]*Group, keys []string) []Group {
	var vendors []Group
	var tail [3]*Group // unassigned, ordered, backordered

	for _, key := range keys {
		group := byKey[key]
		switch key {
		case resolution.UnassignedKey:
			tail[0] = group
		case GroupKeyOrdered:
			tail[1] = group
		case GroupKeyBackordered:
			tail[2] = group
		default:
			vendors = append(vendors, *group)
		}
	}

	sort.SliceStable(vendors, func(i, j int) bool {
		li := strings.ToLower(vendors[i].Label)
		lj := strings.ToLower(vendors[j].Label)
		if li != lj {
			return li < lj
		}
		return vendors[i].Key < vendors[j].Key
	})

	out := vendors
	for _, group := range tail {
		if group != nil {
			out = append(out, *group)
		}
	}
	return out
}
