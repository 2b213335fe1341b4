package core

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func seededSnapshot(t *testing.T) Snapshot {
	t.Helper()
	s := Snapshot{}
	var ok bool
	s, ok = s.AddCategory(Category{ID: "c-dairy", Name: "Dairy"})
	if !ok {
		t.Fatalf("AddCategory rejected")
	}
	s, _ = s.AddCategory(Category{ID: "c-produce", Name: "Produce"})
	s, _ = s.AddStore(Store{ID: "s-d1", Name: "D1"})
	s, ok = s.AddList(ShoppingList{ID: "l1", Name: "Weekly", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Budget: 200000})
	if !ok {
		t.Fatalf("AddList rejected")
	}
	s, _ = s.AddList(ShoppingList{ID: "l2", Name: "Party"})
	s, _, _ = s.AddItem(ListItem{ID: "i1", ListID: "l1", Name: "Milk", CategoryID: "c-dairy", EstimatedPrice: 3200, Quantity: 1})
	s, _, _ = s.AddItem(ListItem{ID: "i2", ListID: "l1", Name: "Tomato", CategoryID: "c-produce", StoreID: "s-d1", EstimatedPrice: 4500, Quantity: 1})
	s, _, _ = s.AddItem(ListItem{ID: "i3", ListID: "l2", Name: "Chips", EstimatedPrice: 1000, Quantity: 3})
	return s
}

func assertTotals(t *testing.T, s Snapshot) {
	t.Helper()
	for _, l := range s.Lists {
		want := ListTotal(s.ListItems(l.ID))
		if l.EstimatedTotal != want {
			t.Fatalf("list %s cached total %v, want %v", l.ID, l.EstimatedTotal, want)
		}
	}
	for _, it := range s.Items {
		if it.Subtotal != Subtotal(it.EstimatedPrice, it.Quantity) {
			t.Fatalf("item %s subtotal %v is stale", it.ID, it.Subtotal)
		}
	}
}

func TestSnapshotTotalsAfterMutations(t *testing.T) {
	s := seededSnapshot(t)
	assertTotals(t, s)

	l1, _ := s.List("l1")
	if l1.EstimatedTotal != 7700 {
		t.Fatalf("l1 total = %v, want 7700", l1.EstimatedTotal)
	}

	s, it, ok := s.UpdateItem("i1", ItemChanges{Quantity: ptr(2.0)})
	if !ok || it.Subtotal != 6400 {
		t.Fatalf("UpdateItem: ok=%v item=%+v", ok, it)
	}
	assertTotals(t, s)
	l1, _ = s.List("l1")
	if l1.EstimatedTotal != 10900 {
		t.Fatalf("l1 total after update = %v, want 10900", l1.EstimatedTotal)
	}

	s, _, ok = s.UpdateItem("i2", ItemChanges{EstimatedPrice: ptr(-10.0)})
	if !ok {
		t.Fatalf("UpdateItem price rejected")
	}
	assertTotals(t, s)
	l1, _ = s.List("l1")
	if l1.EstimatedTotal != 6400 {
		t.Fatalf("negative price must floor to zero, total = %v", l1.EstimatedTotal)
	}

	s, removed, ok := s.DeleteItem("i1")
	if !ok || removed.ID != "i1" {
		t.Fatalf("DeleteItem failed")
	}
	assertTotals(t, s)
	l1, _ = s.List("l1")
	if l1.EstimatedTotal != 0 {
		t.Fatalf("l1 total after delete = %v, want 0", l1.EstimatedTotal)
	}
	l2, _ := s.List("l2")
	if l2.EstimatedTotal != 3000 {
		t.Fatalf("unrelated list changed: %v", l2.EstimatedTotal)
	}
}

func TestSnapshotIsCopyOnWrite(t *testing.T) {
	s := seededSnapshot(t)
	before, _ := s.Item("i1")

	next, _, _ := s.UpdateItem("i1", ItemChanges{Quantity: ptr(5.0), Name: ptr("Oat milk")})
	after, _ := s.Item("i1")
	if after != before {
		t.Fatalf("receiver mutated: %+v -> %+v", before, after)
	}
	changed, _ := next.Item("i1")
	if changed.Name != "Oat milk" || changed.Quantity != 5 {
		t.Fatalf("changes not applied: %+v", changed)
	}

	l1, _ := s.List("l1")
	if l1.EstimatedTotal != 7700 {
		t.Fatalf("receiver list total mutated: %v", l1.EstimatedTotal)
	}
}

func TestDeleteListCascades(t *testing.T) {
	s := seededSnapshot(t)
	s, ok := s.DeleteList("l1")
	if !ok {
		t.Fatalf("DeleteList rejected")
	}
	if _, found := s.List("l1"); found {
		t.Fatalf("list still present")
	}
	if len(s.ListItems("l1")) != 0 {
		t.Fatalf("items of deleted list survived")
	}
	if len(s.Items) != 1 || s.Items[0].ID != "i3" {
		t.Fatalf("unexpected remaining items %+v", s.Items)
	}
}

func TestMissingInputIsNoOp(t *testing.T) {
	s := seededSnapshot(t)

	if _, ok := s.AddList(ShoppingList{ID: "l9", Name: "   "}); ok {
		t.Fatalf("empty list name accepted")
	}
	if _, ok := s.AddList(ShoppingList{Name: "No id"}); ok {
		t.Fatalf("list without id accepted")
	}
	if _, ok := s.AddList(ShoppingList{ID: "l1", Name: "Dup"}); ok {
		t.Fatalf("duplicate id accepted")
	}
	if _, _, ok := s.AddItem(ListItem{ID: "i9", ListID: "missing", Name: "x"}); ok {
		t.Fatalf("item for unknown list accepted")
	}
	if _, _, ok := s.AddItem(ListItem{ID: "i9", ListID: "l1", Name: ""}); ok {
		t.Fatalf("item without name accepted")
	}
	if _, _, ok := s.UpdateList("l1", ListChanges{Name: ptr("")}); ok {
		t.Fatalf("blank rename accepted")
	}
	if _, _, ok := s.UpdateItem("nope", ItemChanges{}); ok {
		t.Fatalf("update of unknown item accepted")
	}
	if _, ok := s.DeleteList("nope"); ok {
		t.Fatalf("delete of unknown list accepted")
	}
}

func TestAddItemNormalizesQuantity(t *testing.T) {
	s := seededSnapshot(t)
	s, it, ok := s.AddItem(ListItem{ID: "i9", ListID: "l2", Name: " Soda ", EstimatedPrice: 500, Quantity: -3})
	if !ok {
		t.Fatalf("AddItem rejected")
	}
	if it.Name != "Soda" || it.Quantity != 1 || it.Subtotal != 500 {
		t.Fatalf("unexpected item %+v", it)
	}
	assertTotals(t, s)
}

func TestUpdateListBudget(t *testing.T) {
	s := seededSnapshot(t)
	s, l, ok := s.UpdateList("l2", ListChanges{Budget: ptr(2000.0), Name: ptr("Birthday")})
	if !ok || l.Name != "Birthday" || l.Budget != 2000 {
		t.Fatalf("UpdateList: ok=%v list=%+v", ok, l)
	}
	sum, err := s.Summary("l2")
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Progress != 150 || !sum.OverBudget() {
		t.Fatalf("progress = %d over=%v, want 150 over", sum.Progress, sum.OverBudget())
	}
}

func TestCategoryLifecycle(t *testing.T) {
	s := seededSnapshot(t)
	s, ok := s.RenameCategory("c-dairy", "Lácteos")
	if !ok {
		t.Fatalf("rename rejected")
	}
	sum, _ := s.Summary("l1")
	if sum.ByCategory[0].Name != "Lácteos" {
		t.Fatalf("rename not reflected: %+v", sum.ByCategory)
	}

	s, ok = s.DeleteCategory("c-dairy")
	if !ok {
		t.Fatalf("delete rejected")
	}
	sum, _ = s.Summary("l1")
	if sum.ByCategory[0].Resolved {
		t.Fatalf("dangling category should be unresolved: %+v", sum.ByCategory[0])
	}
	if SumGroups(sum.ByCategory) != sum.Total {
		t.Fatalf("dangling item dropped from grouping")
	}
}

func TestStoreAndCatalogCRUD(t *testing.T) {
	s := seededSnapshot(t)
	s, st, ok := s.UpdateStore("s-d1", StoreChanges{Location: ptr("Centro")})
	if !ok || st.Location != "Centro" || st.Name != "D1" {
		t.Fatalf("UpdateStore: %+v", st)
	}
	s, ok = s.AddCatalogItem(CatalogItem{ID: "p1", Name: "Rice 1kg", DefaultCategoryID: "c-produce", Unit: "kg", EstimatedPrice: 4500})
	if !ok {
		t.Fatalf("AddCatalogItem rejected")
	}
	s, c, ok := s.UpdateCatalogItem("p1", CatalogChanges{EstimatedPrice: ptr(4700.0)})
	if !ok || c.EstimatedPrice != 4700 {
		t.Fatalf("UpdateCatalogItem: %+v", c)
	}

	it := ItemFromCatalog(c, "l2", 2)
	it.ID = "i-rice"
	s, it, ok = s.AddItem(it)
	if !ok || it.Subtotal != 9400 || it.CatalogItemID != "p1" || it.CategoryID != "c-produce" {
		t.Fatalf("item from catalog: %+v", it)
	}

	s, ok = s.DeleteCatalogItem("p1")
	if !ok || len(s.Catalog) != 0 {
		t.Fatalf("DeleteCatalogItem failed")
	}
	s, ok = s.DeleteStore("s-d1")
	if !ok || len(s.Stores) != 0 {
		t.Fatalf("DeleteStore failed")
	}
	assertTotals(t, s)
}

func TestOverview(t *testing.T) {
	s := seededSnapshot(t)
	// orphan item, not owned by any list
	s.Items = append(s.Items, ListItem{ID: "orphan", ListID: "ghost", Name: "x", EstimatedPrice: 99, Quantity: 1, Subtotal: 99})

	ov := s.Overview()
	if ov.ListCount != 2 {
		t.Fatalf("ListCount = %d", ov.ListCount)
	}
	if ov.GrandTotal != 10700 {
		t.Fatalf("GrandTotal = %v, want 10700", ov.GrandTotal)
	}
	if SumGroups(ov.ByCategory) != ov.GrandTotal || SumGroups(ov.ByStore) != ov.GrandTotal {
		t.Fatalf("overview groups do not sum to grand total")
	}
}
