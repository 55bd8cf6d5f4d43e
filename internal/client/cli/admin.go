package cli

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/arcanedex/internal/client/models"
	"github.com/dmitrijs2005/arcanedex/internal/common"
)

const adminUsage = "admin list [page] [name] | admin add | admin edit <id>"

// Admin dispatches the admin subcommands. They are hidden unless the
// session carries the admin role.
func (a *App) Admin(ctx context.Context, args []string) error {
	if !a.isAdmin(ctx) {
		return common.ErrNotAdmin
	}
	if len(args) == 0 {
		return usageError(adminUsage)
	}

	switch args[0] {
	case "list":
		return a.adminList(ctx, args[1:])
	case "add":
		return a.adminAdd(ctx)
	case "edit":
		id, err := parseID(args[1:], "admin edit <id>")
		if err != nil {
			return err
		}
		return a.adminEdit(ctx, id)
	default:
		return usageError(adminUsage)
	}
}

func (a *App) adminList(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			page = n
			args = args[1:]
		}
	}
	name := strings.Join(args, " ")

	res, err := a.admin.List(ctx, page, a.config.PageSize, name)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}
	for _, c := range res.Data {
		a.printf("%4d  %-24s %s\n", c.ID, c.Name, describeImage(c.Img))
	}
	a.printf("Page %d, %d creatures in total.\n", page, res.Count)
	return nil
}

// readImage accepts a URL, a data URI or a path to a local image file. An
// empty answer means no image.
func readImage(v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if _, err := os.Stat(v); err == nil {
		uri, err := models.EncodeImageFile(v)
		if err != nil {
			return nil, err
		}
		return &uri, nil
	}
	return &v, nil
}

func (a *App) readCreatureInput() (models.CreatureInput, error) {
	var in models.CreatureInput

	name, err := getSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return in, err
	}
	if name == "" {
		return in, common.ErrEmptyField
	}
	in.Name = name

	lore, err := GetMultiline(a.reader, "Lore", a.out)
	if err != nil {
		return in, err
	}
	if lore != "" {
		in.Lore = &lore
	}

	img, err := getSimpleText(a.reader, "Image (URL or file, empty for none)", a.out)
	if err != nil {
		return in, err
	}
	in.Img, err = readImage(img)
	return in, err
}

func (a *App) adminAdd(ctx context.Context) error {
	in, err := a.readCreatureInput()
	if err != nil {
		return err
	}
	c, err := a.admin.Add(ctx, in)
	if err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printf("Created #%d %s.\n", c.ID, c.Name)
	return nil
}

func (a *App) adminEdit(ctx context.Context, id int64) error {
	a.println("Empty lore or image keeps the current value.")
	in, err := a.readCreatureInput()
	if err != nil {
		return err
	}
	if err := a.admin.Edit(ctx, id, in); err != nil {
		return a.fetchFailed(ctx, err)
	}
	a.printf("Creature #%d updated.\n", id)
	return nil
}
