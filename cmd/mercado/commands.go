package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"mercado/internal/core"
	"mercado/internal/services"
)

var (
	errUsage    = errors.New("usage")
	errNoChange = errors.New("nothing changed")
)

type app struct {
	planner *services.Planner
	out     io.Writer
}

type command struct {
	usage string
	run   func(a *app, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"lists":           {"lists", (*app).lists},
	"show":            {"show <list>", (*app).show},
	"summary":         {"summary [list]", (*app).summary},
	"add-list":        {"add-list -name NAME [-budget N]", (*app).addList},
	"edit-list":       {"edit-list <list> [-name NAME] [-budget N]", (*app).editList},
	"rm-list":         {"rm-list <list>", (*app).rmList},
	"add-item":        {"add-item <list> (-name NAME | -catalog ITEM) [-qty N] [-price N] [-unit U] [-category C] [-store S]", (*app).addItem},
	"edit-item":       {"edit-item <item> [-name NAME] [-qty N] [-price N] [-unit U] [-category C] [-store S]", (*app).editItem},
	"check":           {"check <item>", (*app).check},
	"rm-item":         {"rm-item <item>", (*app).rmItem},
	"stores":          {"stores", (*app).stores},
	"add-store":       {"add-store -name NAME [-location L]", (*app).addStore},
	"edit-store":      {"edit-store <store> [-name NAME] [-location L]", (*app).editStore},
	"rm-store":        {"rm-store <store>", (*app).rmStore},
	"catalog":         {"catalog", (*app).catalog},
	"add-catalog":     {"add-catalog -name NAME [-category C] [-store S] [-unit U] [-price N]", (*app).addCatalog},
	"edit-catalog":    {"edit-catalog <item> [-name NAME] [-category C] [-store S] [-unit U] [-price N]", (*app).editCatalog},
	"rm-catalog":      {"rm-catalog <item>", (*app).rmCatalog},
	"categories":      {"categories", (*app).categories},
	"add-category":    {"add-category -name NAME [-icon I]", (*app).addCategory},
	"rename-category": {"rename-category <category> -name NAME", (*app).renameCategory},
	"rm-category":     {"rm-category <category>", (*app).rmCategory},
	"seed":            {"seed", (*app).seed},
	"reset":           {"reset -yes", (*app).reset},
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd.run(a, ctx, args[1:])
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "usage: mercado <command> [arguments]")
	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  mercado %s\n", commands[name].usage)
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parse splits off a leading positional reference, then parses the flags.
// The returned set holds the names of flags given on the command line.
func parse(fs *flag.FlagSet, args []string, wantRef bool) (string, map[string]bool, error) {
	var ref string
	if wantRef {
		if len(args) == 0 || strings.HasPrefix(args[0], "-") {
			return "", nil, fmt.Errorf("%w: %s needs a reference", errUsage, fs.Name())
		}
		ref, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return "", nil, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() > 0 {
		return "", nil, fmt.Errorf("%w: unexpected argument %q", errUsage, fs.Arg(0))
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return ref, set, nil
}

// resolve finds the record whose id equals ref, or failing that the single
// record whose id starts with ref or whose name matches it.
func resolve[T any](records []T, ref string, key func(T) (id, name string)) (T, bool) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, false
	}
	for _, r := range records {
		if id, _ := key(r); id == ref {
			return r, true
		}
	}
	var hit T
	n := 0
	for _, r := range records {
		id, name := key(r)
		if strings.HasPrefix(id, ref) || strings.EqualFold(name, ref) {
			hit = r
			n++
		}
	}
	if n != 1 {
		return zero, false
	}
	return hit, true
}

func listKey(l core.ShoppingList) (string, string) { return l.ID, l.Name }
func itemKey(it core.ListItem) (string, string) { return it.ID, it.Name }
func categoryKey(c core.Category) (string, string) { return c.ID, c.Name }
func storeKey(s core.Store) (string, string) { return s.ID, s.Name }
func catalogKey(c core.CatalogItem) (string, string) { return c.ID, c.Name }

func (a *app) findList(ref string) (core.ShoppingList, error) {
	l, ok := resolve(a.planner.Snapshot().Lists, ref, listKey)
	if !ok {
		return l, fmt.Errorf("list %q: %w", ref, core.ErrNotFound)
	}
	return l, nil
}

func (a *app) findItem(ref string) (core.ListItem, error) {
	it, ok := resolve(a.planner.Snapshot().Items, ref, itemKey)
	if !ok {
		return it, fmt.Errorf("item %q: %w", ref, core.ErrNotFound)
	}
	return it, nil
}

// categoryRef maps a category name or id to its id. Unknown values are kept
// as a denormalized name.
func (a *app) categoryRef(v string) (id, name string) {
	if c, ok := resolve(a.planner.Snapshot().Categories, v, categoryKey); ok {
		return c.ID, c.Name
	}
	return "", strings.TrimSpace(v)
}

func (a *app) storeRef(v string) (id, name string) {
	if s, ok := resolve(a.planner.Snapshot().Stores, v, storeKey); ok {
		return s.ID, s.Name
	}
	return "", strings.TrimSpace(v)
}

func (a *app) lists(_ context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: lists takes no arguments", errUsage)
	}
	s := a.planner.Snapshot()
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tITEMS\tTOTAL\tBUDGET\tPROGRESS")
	for _, l := range s.Lists {
		sum, err := s.Summary(l.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
			shortID(l.ID), l.Name, sum.ItemCount, money(sum.Total), budget(l.Budget), progress(sum))
	}
	return tw.Flush()
}

func (a *app) show(_ context.Context, args []string) error {
	ref, _, err := parse(newFlags("show"), args, true)
	if err != nil {
		return err
	}
	l, err := a.findList(ref)
	if err != nil {
		return err
	}
	s := a.planner.Snapshot()
	sum, err := s.Summary(l.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s  %s / %s  %s\n\n", l.Name, money(sum.Total), budget(l.Budget), progress(sum))

	tw := newTable(a.out)
	fmt.Fprintln(tw, " \tID\tNAME\tQTY\tUNIT\tPRICE\tSUBTOTAL\tCATEGORY\tSTORE")
	for _, it := range s.ListItems(l.ID) {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			checkbox(it.IsChecked), shortID(it.ID), it.Name, number(it.Quantity), dash(it.Unit),
			money(it.EstimatedPrice), money(it.Subtotal), categoryName(s, it), storeName(s, it))
	}
	return tw.Flush()
}

func (a *app) summary(_ context.Context, args []string) error {
	ref, _, err := parse(newFlags("summary"), args, len(args) > 0)
	if err != nil {
		return err
	}
	s := a.planner.Snapshot()
	if ref == "" {
		ov := s.Overview()
		fmt.Fprintf(a.out, "%d lists, grand total %s\n", ov.ListCount, money(ov.GrandTotal))
		return a.printGroups(
			groupSection{"BY CATEGORY", ov.ByCategory},
			groupSection{"BY STORE", ov.ByStore},
		)
	}

	l, err := a.findList(ref)
	if err != nil {
		return err
	}
	sum, err := s.Summary(l.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n", l.Name)
	fmt.Fprintf(a.out, "  total      %s\n", money(sum.Total))
	fmt.Fprintf(a.out, "  budget     %s\n", budget(l.Budget))
	if l.Budget > 0 {
		fmt.Fprintf(a.out, "  remaining  %s\n", money(sum.Remaining))
	}
	fmt.Fprintf(a.out, "  progress   %s\n", progress(sum))
	fmt.Fprintf(a.out, "  checked    %d/%d\n", sum.CheckedCount, sum.ItemCount)
	return a.printGroups(
		groupSection{"BY CATEGORY", sum.ByCategory},
		groupSection{"BY STORE", sum.ByStore},
		groupSection{"ALL CATEGORIES", sum.CategoryBreakdown},
	)
}

type groupSection struct {
	title  string
	groups []core.GroupTotal
}

func (a *app) printGroups(sections ...groupSection) error {
	tw := newTable(a.out)
	for _, sec := range sections {
		fmt.Fprintf(tw, "\n%s\tITEMS\tTOTAL\n", sec.title)
		for _, g := range sec.groups {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", groupName(g), g.Count, money(g.Total))
		}
		fmt.Fprintf(tw, "total\t\t%s\n", money(core.SumGroups(sec.groups)))
	}
	return tw.Flush()
}

func (a *app) addList(ctx context.Context, args []string) error {
	fs := newFlags("add-list")
	name := fs.String("name", "", "list name")
	budgetArg := fs.String("budget", "", "budget, 0 disables tracking")
	if _, _, err := parse(fs, args, false); err != nil {
		return err
	}
	l, err := a.planner.CreateList(ctx, *name, core.Budget(*budgetArg))
	if err != nil {
		return err
	}
	if l.ID == "" {
		return fmt.Errorf("%w: a list needs a name", errNoChange)
	}
	fmt.Fprintf(a.out, "created list %s (%s)\n", l.Name, shortID(l.ID))
	return nil
}

func (a *app) editList(ctx context.Context, args []string) error {
	fs := newFlags("edit-list")
	name := fs.String("name", "", "new name")
	budgetArg := fs.String("budget", "", "new budget")
	ref, set, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	l, err := a.findList(ref)
	if err != nil {
		return err
	}
	var ch core.ListChanges
	if set["name"] {
		ch.Name = name
	}
	if set["budget"] {
		b := core.Budget(*budgetArg)
		ch.Budget = &b
	}
	updated, err := a.planner.UpdateList(ctx, l.ID, ch)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return errNoChange
	}
	fmt.Fprintf(a.out, "updated list %s\n", updated.Name)
	return nil
}

func (a *app) rmList(ctx context.Context, args []string) error {
	ref, _, err := parse(newFlags("rm-list"), args, true)
	if err != nil {
		return err
	}
	l, err := a.findList(ref)
	if err != nil {
		return err
	}
	if _, err := a.planner.DeleteList(ctx, l.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted list %s\n", l.Name)
	return nil
}

func (a *app) addItem(ctx context.Context, args []string) error {
	fs := newFlags("add-item")
	name := fs.String("name", "", "item name")
	catalogRef := fs.String("catalog", "", "catalog item to copy")
	qty := fs.String("qty", "", "quantity")
	price := fs.String("price", "", "estimated unit price")
	unit := fs.String("unit", "", "unit")
	category := fs.String("category", "", "category name or id")
	store := fs.String("store", "", "store name or id")
	ref, set, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	l, err := a.findList(ref)
	if err != nil {
		return err
	}

	var added core.ListItem
	if set["catalog"] {
		c, ok := resolve(a.planner.Snapshot().Catalog, *catalogRef, catalogKey)
		if !ok {
			return fmt.Errorf("catalog item %q: %w", *catalogRef, core.ErrNotFound)
		}
		added, err = a.planner.AddCatalogItem(ctx, l.ID, c.ID, core.Quantity(*qty))
		if err == nil && added.ID != "" {
			added, err = a.applyItemFlags(ctx, added.ID, set, name, qty, price, unit, category, store)
		}
	} else {
		it := core.ListItem{
			ListID:         l.ID,
			Name:           *name,
			Quantity:       core.Quantity(*qty),
			Unit:           *unit,
			EstimatedPrice: core.Price(*price),
		}
		it.CategoryID, it.CategoryName = a.categoryRef(*category)
		it.StoreID, it.StoreName = a.storeRef(*store)
		added, err = a.planner.AddItem(ctx, it)
	}
	if err != nil {
		return err
	}
	if added.ID == "" {
		return fmt.Errorf("%w: an item needs a name", errNoChange)
	}
	fmt.Fprintf(a.out, "added %s x%s = %s to %s\n", added.Name, number(added.Quantity), money(added.Subtotal), l.Name)
	return nil
}

func (a *app) editItem(ctx context.Context, args []string) error {
	fs := newFlags("edit-item")
	name := fs.String("name", "", "item name")
	qty := fs.String("qty", "", "quantity")
	price := fs.String("price", "", "estimated unit price")
	unit := fs.String("unit", "", "unit")
	category := fs.String("category", "", "category name or id")
	store := fs.String("store", "", "store name or id")
	ref, set, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	it, err := a.findItem(ref)
	if err != nil {
		return err
	}
	updated, err := a.applyItemFlags(ctx, it.ID, set, name, qty, price, unit, category, store)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return errNoChange
	}
	fmt.Fprintf(a.out, "updated %s x%s = %s\n", updated.Name, number(updated.Quantity), money(updated.Subtotal))
	return nil
}

// applyItemFlags turns the item flags given on the command line into an
// update of the item. Flags left out keep the current value.
func (a *app) applyItemFlags(ctx context.Context, id string, set map[string]bool,
	name, qty, price, unit, category, store *string) (core.ListItem, error) {
	var ch core.ItemChanges
	if set["name"] {
		ch.Name = name
	}
	if set["qty"] {
		q := core.Quantity(*qty)
		ch.Quantity = &q
	}
	if set["price"] {
		p := core.Price(*price)
		ch.EstimatedPrice = &p
	}
	if set["unit"] {
		ch.Unit = unit
	}
	if set["category"] {
		cid, cname := a.categoryRef(*category)
		ch.CategoryID, ch.CategoryName = &cid, &cname
	}
	if set["store"] {
		sid, sname := a.storeRef(*store)
		ch.StoreID, ch.StoreName = &sid, &sname
	}
	if ch == (core.ItemChanges{}) {
		it, _ := a.planner.Snapshot().Item(id)
		return it, nil
	}
	return a.planner.UpdateItem(ctx, id, ch)
}

func (a *app) check(ctx context.Context, args []string) error {
	ref, _, err := parse(newFlags("check"), args, true)
	if err != nil {
		return err
	}
	it, err := a.findItem(ref)
	if err != nil {
		return err
	}
	toggled, err := a.planner.ToggleItem(ctx, it.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s\n", checkbox(toggled.IsChecked), toggled.Name)
	return nil
}

func (a *app) rmItem(ctx context.Context, args []string) error {
	ref, _, err := parse(newFlags("rm-item"), args, true)
	if err != nil {
		return err
	}
	it, err := a.findItem(ref)
	if err != nil {
		return err
	}
	if _, err := a.planner.DeleteItem(ctx, it.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted item %s\n", it.Name)
	return nil
}

func (a *app) stores(_ context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: stores takes no arguments", errUsage)
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION")
	for _, s := range a.planner.Stores() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", shortID(s.ID), s.Name, dash(s.Location))
	}
	return tw.Flush()
}

func (a *app) addStore(ctx context.Context, args []string) error {
	fs := newFlags("add-store")
	name := fs.String("name", "", "store name")
	location := fs.String("location", "", "location")
	if _, _, err := parse(fs, args, false); err != nil {
		return err
	}
	st, err := a.planner.CreateStore(ctx, *name, *location)
	if err != nil {
		return err
	}
	if st.ID == "" {
		return fmt.Errorf("%w: a store needs a name", errNoChange)
	}
	fmt.Fprintf(a.out, "created store %s (%s)\n", st.Name, shortID(st.ID))
	return nil
}

func (a *app) editStore(ctx context.Context, args []string) error {
	fs := newFlags("edit-store")
	name := fs.String("name", "", "store name")
	location := fs.String("location", "", "location")
	ref, set, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	st, ok := resolve(a.planner.Stores(), ref, storeKey)
	if !ok {
		return fmt.Errorf("store %q: %w", ref, core.ErrNotFound)
	}
	var ch core.StoreChanges
	if set["name"] {
		ch.Name = name
	}
	if set["location"] {
		ch.Location = location
	}
	updated, err := a.planner.UpdateStore(ctx, st.ID, ch)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return errNoChange
	}
	fmt.Fprintf(a.out, "updated store %s\n", updated.Name)
	return nil
}

func (a *app) rmStore(ctx context.Context, args []string) error {
	ref, _, err := parse(newFlags("rm-store"), args, true)
	if err != nil {
		return err
	}
	st, ok := resolve(a.planner.Stores(), ref, storeKey)
	if !ok {
		return fmt.Errorf("store %q: %w", ref, core.ErrNotFound)
	}
	if _, err := a.planner.DeleteStore(ctx, st.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted store %s\n", st.Name)
	return nil
}

func (a *app) catalog(_ context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: catalog takes no arguments", errUsage)
	}
	s := a.planner.Snapshot()
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tUNIT\tPRICE")
	for _, c := range s.Catalog {
		cat := c.CategoryName
		if found, ok := s.Category(c.DefaultCategoryID); ok {
			cat = found.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", shortID(c.ID), c.Name, dash(cat), dash(c.Unit), money(c.EstimatedPrice))
	}
	return tw.Flush()
}

func (a *app) addCatalog(ctx context.Context, args []string) error {
	fs := newFlags("add-catalog")
	name := fs.String("name", "", "item name")
	category := fs.String("category", "", "default category")
	store := fs.String("store", "", "default store")
	unit := fs.String("unit", "", "unit")
	price := fs.String("price", "", "estimated unit price")
	if _, _, err := parse(fs, args, false); err != nil {
		return err
	}
	c := core.CatalogItem{Name: *name, Unit: *unit, EstimatedPrice: core.Price(*price)}
	c.DefaultCategoryID, c.CategoryName = a.categoryRef(*category)
	c.DefaultStoreID, _ = a.storeRef(*store)
	created, err := a.planner.CreateCatalogItem(ctx, c)
	if err != nil {
		return err
	}
	if created.ID == "" {
		return fmt.Errorf("%w: a catalog item needs a name", errNoChange)
	}
	fmt.Fprintf(a.out, "created catalog item %s (%s)\n", created.Name, shortID(created.ID))
	return nil
}

func (a *app) editCatalog(ctx context.Context, args []string) error {
	fs := newFlags("edit-catalog")
	name := fs.String("name", "", "item name")
	category := fs.String("category", "", "default category")
	store := fs.String("store", "", "default store")
	unit := fs.String("unit", "", "unit")
	price := fs.String("price", "", "estimated unit price")
	ref, set, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	c, ok := resolve(a.planner.Catalog(), ref, catalogKey)
	if !ok {
		return fmt.Errorf("catalog item %q: %w", ref, core.ErrNotFound)
	}
	var ch core.CatalogChanges
	if set["name"] {
		ch.Name = name
	}
	if set["category"] {
		id, _ := a.categoryRef(*category)
		ch.DefaultCategoryID = &id
	}
	if set["store"] {
		id, _ := a.storeRef(*store)
		ch.DefaultStoreID = &id
	}
	if set["unit"] {
		ch.Unit = unit
	}
	if set["price"] {
		p := core.Price(*price)
		ch.EstimatedPrice = &p
	}
	updated, err := a.planner.UpdateCatalogItem(ctx, c.ID, ch)
	if err != nil {
		return err
	}
	if updated.ID == "" {
		return errNoChange
	}
	fmt.Fprintf(a.out, "updated catalog item %s\n", updated.Name)
	return nil
}

func (a *app) rmCatalog(ctx context.Context, args []string) error {
	ref, _, err := parse(newFlags("rm-catalog"), args, true)
	if err != nil {
		return err
	}
	c, ok := resolve(a.planner.Catalog(), ref, catalogKey)
	if !ok {
		return fmt.Errorf("catalog item %q: %w", ref, core.ErrNotFound)
	}
	if _, err := a.planner.DeleteCatalogItem(ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted catalog item %s\n", c.Name)
	return nil
}

func (a *app) categories(_ context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: categories takes no arguments", errUsage)
	}
	tw := newTable(a.out)
	fmt.Fprintln(tw, "ID\tNAME\tICON")
	for _, c := range a.planner.Categories() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", shortID(c.ID), c.Name, dash(c.Icon))
	}
	return tw.Flush()
}

func (a *app) addCategory(ctx context.Context, args []string) error {
	fs := newFlags("add-category")
	name := fs.String("name", "", "category name")
	icon := fs.String("icon", "", "icon")
	if _, _, err := parse(fs, args, false); err != nil {
		return err
	}
	c, err := a.planner.CreateCategory(ctx, *name, *icon)
	if err != nil {
		return err
	}
	if c.ID == "" {
		return fmt.Errorf("%w: a category needs a unique name", errNoChange)
	}
	fmt.Fprintf(a.out, "created category %s (%s)\n", c.Name, shortID(c.ID))
	return nil
}

func (a *app) renameCategory(ctx context.Context, args []string) error {
	fs := newFlags("rename-category")
	name := fs.String("name", "", "new name")
	ref, _, err := parse(fs, args, true)
	if err != nil {
		return err
	}
	c, ok := resolve(a.planner.Categories(), ref, categoryKey)
	if !ok {
		return fmt.Errorf("category %q: %w", ref, core.ErrNotFound)
	}
	renamed, err := a.planner.RenameCategory(ctx, c.ID, *name)
	if err != nil {
		return err
	}
	if !renamed {
		return errNoChange
	}
	fmt.Fprintf(a.out, "renamed category %s to %s\n", c.Name, strings.TrimSpace(*name))
	return nil
}

func (a *app) rmCategory(ctx context.Context, args []string) error {
	ref, _, err := parse(newFlags("rm-category"), args, true)
	if err != nil {
		return err
	}
	c, ok := resolve(a.planner.Categories(), ref, categoryKey)
	if !ok {
		return fmt.Errorf("category %q: %w", ref, core.ErrNotFound)
	}
	if _, err := a.planner.DeleteCategory(ctx, c.ID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted category %s\n", c.Name)
	return nil
}

func (a *app) seed(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: seed takes no arguments", errUsage)
	}
	if err := services.Seed(ctx, a.planner); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "seeded empty collections")
	return nil
}

func (a *app) reset(ctx context.Context, args []string) error {
	fs := newFlags("reset")
	yes := fs.Bool("yes", false, "confirm")
	if _, _, err := parse(fs, args, false); err != nil {
		return err
	}
	if !*yes {
		return fmt.Errorf("%w: reset deletes every list, pass -yes to confirm", errUsage)
	}
	if err := a.planner.Reset(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "all data removed")
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func money(v float64) string {
	return "$" + number(v)
}

func budget(b float64) string {
	if b <= 0 {
		return "-"
	}
	return money(b)
}

func progress(sum core.ListSummary) string {
	if sum.List.Budget <= 0 {
		return "-"
	}
	if sum.OverBudget() {
		return fmt.Sprintf("%d%% over budget", sum.Progress)
	}
	return fmt.Sprintf("%d%%", sum.Progress)
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func groupName(g core.GroupTotal) string {
	if !g.Resolved {
		if g.Key == "" {
			return "unassigned"
		}
		return g.Key + " (unassigned)"
	}
	return g.Name
}

func categoryName(s core.Snapshot, it core.ListItem) string {
	if c, ok := s.Category(it.CategoryID); ok {
		return c.Name
	}
	return dash(it.CategoryName)
}

func storeName(s core.Snapshot, it core.ListItem) string {
	if st, ok := s.Store(it.StoreID); ok {
		return st.Name
	}
	return dash(it.StoreName)
}
