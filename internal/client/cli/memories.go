package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/memorymap/internal/common"
	"github.com/dmitrijs2005/memorymap/internal/models"
)

var patchKeys = []string{
	models.PatchKeyTitle,
	models.PatchKeyDescription,
	models.PatchKeyLocation,
	models.PatchKeyLatitude,
	models.PatchKeyLongitude,
}

// Add asks for the fields of a new memory and saves it.
func (a *App) Add(ctx context.Context) error {
	p, err := a.principal()
	if err != nil {
		return err
	}

	title, err := GetSimpleText(a.reader, "Title")
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", a.out)
	if err != nil {
		return err
	}
	label, err := GetSimpleText(a.reader, "Location label (optional)")
	if err != nil {
		return err
	}
	coords, err := GetSimpleText(a.reader, "Coordinates as lat,lng")
	if err != nil {
		return err
	}
	lat, lng, err := parseCoordinates(coords)
	if err != nil {
		return err
	}

	r, err := a.memories.Create(ctx, p, models.Fields{
		Title:         title,
		Description:   description,
		LocationLabel: label,
		Latitude:      lat,
		Longitude:     lng,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved memory #%d\n", r.ID)
	a.warnPersist()
	return nil
}

// Edit shows a memory and applies name=value changes to it.
func (a *App) Edit(ctx context.Context, args []string) error {
	p, err := a.principal()
	if err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	current, err := a.memories.Get(p, id)
	if err != nil {
		return err
	}
	a.printRecord(current)

	lines, err := GetFields(a.reader, a.out, patchKeys)
	if err != nil {
		return err
	}
	patch, err := models.ParsePatch(lines)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}

	r, err := a.memories.Update(ctx, p, id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated memory #%d\n", r.ID)
	a.warnPersist()
	return nil
}

// Delete removes one memory after confirmation. A missing id is reported
// but is not an error.
func (a *App) Delete(ctx context.Context, args []string) error {
	p, err := a.principal()
	if err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}

	r, err := a.memories.Get(p, id)
	if errors.Is(err, common.ErrorNotFound) {
		fmt.Fprintf(a.out, "No memory #%d\n", id)
		return nil
	}
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, fmt.Sprintf("Delete memory #%d %q? [y/N]", r.ID, r.Title), "y")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.memories.Delete(ctx, p, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted memory #%d\n", id)
	a.warnPersist()
	return nil
}

// Clear wipes every memory once the user types "yes".
func (a *App) Clear(ctx context.Context) error {
	p, err := a.principal()
	if err != nil {
		return err
	}

	ok, err := Confirm(a.reader, "This deletes ALL memories and cannot be undone. Type 'yes' to confirm", "yes")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.memories.Clear(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All memories deleted")
	a.warnPersist()
	return nil
}

// List prints the principal's memories in creation order.
func (a *App) List(ctx context.Context) error {
	p, err := a.principal()
	if err != nil {
		return err
	}

	mine := a.memories.Mine(p)
	if len(mine) == 0 {
		fmt.Fprintln(a.out, "No memories yet. Use 'add' to create one.")
		return nil
	}
	for _, r := range mine {
		a.printRecord(r)
	}
	return nil
}

// Timeline prints the principal's memories grouped by year and month.
func (a *App) Timeline(ctx context.Context) error {
	p, err := a.principal()
	if err != nil {
		return err
	}

	years := a.memories.Timeline(p)
	if len(years) == 0 {
		fmt.Fprintln(a.out, "No memories yet. Use 'add' to create one.")
		return nil
	}
	a.printTimeline(years)
	return nil
}

func (a *App) warnPersist() {
	if err := a.memories.PersistErr(); err != nil {
		fmt.Fprintln(a.out, "Warning: could not save, changes visible this session only")
	}
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: memory id is required", common.ErrorValidation)
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a memory id", common.ErrorValidation, args[0])
	}
	return id, nil
}

// parseIDList accepts ids separated by commas, spaces or both.
func parseIDList(args []string) ([]int64, error) {
	fields := strings.FieldsFunc(strings.Join(args, " "), func(r rune) bool { return r == ',' || r == ' ' })
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := parseID([]string{f})
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseCoordinates(s string) (float64, float64, error) {
	latS, lngS, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("%w: coordinates must be lat,lng", common.ErrorValidation)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latS), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: latitude %q is not a number", common.ErrorValidation, latS)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngS), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: longitude %q is not a number", common.ErrorValidation, lngS)
	}
	return lat, lng, nil
}
