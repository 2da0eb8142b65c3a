package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/models"
	"github.com/dmitrijs2005/userdir/internal/view"
)

var (
	errBusy       = errors.New("a fetch is already in progress")
	errNoNextPage = errors.New("already on the last page")
	errNoPrevPage = errors.New("already on the first page")
)

func usage(format string) error {
	return fmt.Errorf("usage: %s", format)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// List prints the current page under the active search and sort.
func (a *App) List(ctx context.Context, args []string) error {
	snap := a.store.Snapshot()
	users := a.store.FilteredAndSortedUsers()

	a.mu.Lock()
	a.lastView = users
	a.mu.Unlock()

	if banner := renderBanner(snap); banner != "" {
		a.println(banner)
	}
	if len(users) == 0 {
		if !(snap.IsError && len(snap.Users) == 0) {
			a.println(renderEmpty(snap))
		}
		return nil
	}
	a.println(renderTable(users, snap.IsFavorite, a.width()))
	a.println(renderFooter(snap, len(users)))
	return nil
}

// resolve finds a user by its row number in the last listing or by id.
func (a *App) resolve(ctx context.Context, ref string) (models.User, error) {
	a.mu.Lock()
	last := a.lastView
	a.mu.Unlock()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(last) {
			return models.User{}, fmt.Errorf("no row %d in the last listing", n)
		}
		return last[n-1], nil
	}
	for _, u := range a.store.Snapshot().Users {
		if u.ID == ref {
			return u, nil
		}
	}
	u, err := a.repos.Users().GetByID(ctx, ref)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return models.User{}, fmt.Errorf("user %s not found", ref)
		}
		return models.User{}, err
	}
	return *u, nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <n|id>")
	}
	u, err := a.resolve(ctx, args[0])
	if err != nil {
		return err
	}
	a.println(renderDetail(u, a.store.Snapshot().IsFavorite(u.ID)))
	return nil
}

func (a *App) Next(ctx context.Context, args []string) error {
	snap := a.store.Snapshot()
	switch {
	case snap.IsLoading:
		return errBusy
	case !snap.HasNextPage():
		return errNoNextPage
	}
	a.store.FetchUsers(ctx, snap.CurrentPage+1)
	return a.List(ctx, nil)
}

func (a *App) Prev(ctx context.Context, args []string) error {
	snap := a.store.Snapshot()
	switch {
	case snap.IsLoading:
		return errBusy
	case !snap.HasPrevPage():
		return errNoPrevPage
	}
	a.store.FetchUsers(ctx, snap.CurrentPage-1)
	return a.List(ctx, nil)
}

// Page fetches an arbitrary page. It is not limited by the reported total.
func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("page <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid page %q", args[0])
	}
	if a.store.Snapshot().IsLoading {
		return errBusy
	}
	a.store.FetchUsers(ctx, n)
	return a.List(ctx, nil)
}

func (a *App) Search(ctx context.Context, args []string) error {
	a.store.SetSearchTerm(strings.Join(args, " "))
	return a.List(ctx, nil)
}

func (a *App) Sort(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sort <name|email|age|country>")
	}
	key, err := view.ParseSortKey(args[0])
	if err != nil {
		return err
	}
	a.store.SetSortBy(key)
	return a.List(ctx, nil)
}

// Order sets the sort order, or flips it when no argument is given.
func (a *App) Order(ctx context.Context, args []string) error {
	var order view.SortOrder
	switch len(args) {
	case 0:
		order = a.store.Snapshot().SortOrder.Toggle()
	case 1:
		o, err := view.ParseSortOrder(args[0])
		if err != nil {
			return err
		}
		order = o
	default:
		return usage("order [asc|desc]")
	}
	a.store.SetSortOrder(order)
	return a.List(ctx, nil)
}

func (a *App) Fav(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("fav <n|id>")
	}
	u, err := a.resolve(ctx, args[0])
	if err != nil {
		return err
	}

	was := a.store.Snapshot().IsFavorite(u.ID)
	a.store.ToggleFavorite(ctx, u.ID)
	now := a.store.Snapshot().IsFavorite(u.ID)

	switch {
	case now == was:
		return fmt.Errorf("could not update favorite for %s", u.Name.FullName())
	case now:
		a.println(favStyle.Render(heart), "Added", u.Name.FullName(), "to favorites")
	default:
		a.println("Removed", u.Name.FullName(), "from favorites")
	}
	return nil
}

// Favs lists favorites, looking up users that are no longer on screen in
// the local cache.
func (a *App) Favs(ctx context.Context, args []string) error {
	snap := a.store.Snapshot()
	ids := snap.FavoriteIDs()
	if len(ids) == 0 {
		a.println("No favorites yet.")
		return nil
	}

	byID := make(map[string]models.User, len(snap.Users))
	for _, u := range snap.Users {
		byID[u.ID] = u
	}

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			users = append(users, u)
			continue
		}
		u, err := a.repos.Users().GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, common.ErrNotFound) {
				a.logger.Warn(ctx, "favorite lookup failed", "user_id", id, "err", err)
			}
			users = append(users, models.User{ID: id, Name: models.Name{First: "(not cached)"}})
			continue
		}
		users = append(users, *u)
	}
	view.Sort(users, view.SortByName, view.Asc)

	a.mu.Lock()
	a.lastView = users
	a.mu.Unlock()

	a.println(renderTable(users, snap.IsFavorite, a.width()))
	return nil
}

// Offline sets manual offline mode, or flips it when no argument is given.
func (a *App) Offline(ctx context.Context, args []string) error {
	on := !a.store.Snapshot().IsManualOffline
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "true", "1":
			on = true
		case "off", "false", "0":
			on = false
		default:
			return usage("offline [on|off]")
		}
	}
	a.store.SetManualOffline(on)
	if on {
		a.println("Manual offline mode on. Fetches will use the local cache.")
	} else {
		a.println("Manual offline mode off. Type 'retry' to fetch from the network.")
	}
	return nil
}

func (a *App) Retry(ctx context.Context, args []string) error {
	if a.store.Snapshot().IsLoading {
		return errBusy
	}
	a.store.Retry(ctx)
	return a.List(ctx, nil)
}

func (a *App) Refresh(ctx context.Context, args []string) error {
	if a.store.Snapshot().IsLoading {
		return errBusy
	}
	a.store.Refresh(ctx)
	return a.List(ctx, nil)
}

func (a *App) Clear(ctx context.Context, args []string) error {
	a.store.ClearCache(ctx)
	a.println("Cache cleared.")
	return nil
}

// Status prints the connection state and what the local cache holds.
func (a *App) Status(ctx context.Context, args []string) error {
	snap := a.store.Snapshot()

	cached, err := a.repos.Users().Count(ctx)
	if err != nil {
		return fmt.Errorf("count cached users: %w", err)
	}
	pages, err := a.repos.Cache().GetAll(ctx)
	if err != nil {
		return fmt.Errorf("read cache metadata: %w", err)
	}

	a.println(labelStyle.Render("Mode:") + string(modeOf(snap)))
	a.println(labelStyle.Render("State:") + string(snap.Phase()))
	if snap.IsError {
		a.println(labelStyle.Render("Error:") + snap.ErrorMessage)
	}
	a.println(labelStyle.Render("Page:") + fmt.Sprintf("%d of %d (%d results)", snap.CurrentPage, max(snap.TotalPages(), 1), snap.TotalResults))
	a.println(labelStyle.Render("Loaded:") + fmt.Sprintf("%d users, %d favorites", len(snap.Users), len(snap.Favorites)))
	a.println(labelStyle.Render("Cached:") + fmt.Sprintf("%d users, %d pages", cached, len(pages)))

	current, err := a.repos.Cache().GetByPage(ctx, snap.CurrentPage)
	switch {
	case errors.Is(err, common.ErrNotFound):
		a.println(labelStyle.Render("Fetched:") + fmt.Sprintf("page %d not cached", snap.CurrentPage))
	case err != nil:
		return fmt.Errorf("read page %d metadata: %w", snap.CurrentPage, err)
	default:
		a.println(labelStyle.Render("Fetched:") + fmt.Sprintf("page %d at %s",
			current.Page, current.LastFetched.Local().Format("2006-01-02 15:04:05")))
	}
	for _, p := range pages {
		a.println(dimStyle.Render(fmt.Sprintf("  page %d fetched %s (%d results)",
			p.Page, p.LastFetched.Local().Format("2006-01-02 15:04:05"), p.TotalResults)))
	}
	return nil
}
