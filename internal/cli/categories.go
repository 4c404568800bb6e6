package cli

import (
	"context"
	"fmt"

	"catalog/admin/internal/catalog"
	"catalog/admin/internal/domain"
	"catalog/admin/internal/render"
)

func (c *CLI) categories(ctx context.Context, args []string) error {
	act, args, err := action(args, "tree", "list", "create", "update", "delete")
	if err != nil {
		return err
	}

	fs := c.flags("categories " + act)
	level := fs.IntP("level", "l", 1, "hierarchy level: 1 category, 2 subcategory, 3 specification")
	parent := fs.String("parent", "", "parent id (levels 2 and 3)")
	name := fs.StringP("name", "n", "", "node name")
	id := fs.String("id", "", "node id")
	if err := parse(fs, args); err != nil {
		return err
	}

	var tree *catalog.Tree
	switch act {
	case "tree":
		tree, err = c.app.Categories.Tree(ctx)
	case "list":
		tree, err = c.app.Categories.Tree(ctx)
		if err != nil {
			return err
		}
		return c.listLevel(tree, domain.Level(*level), domain.ID(*parent))
	case "create":
		tree, err = c.app.Categories.Create(ctx, catalog.CreateInput{
			Level:    domain.Level(*level),
			Name:     *name,
			ParentID: domain.ID(*parent),
		})
	case "update":
		in := catalog.UpdateInput{
			ID:       domain.ID(*id),
			Level:    domain.Level(*level),
			Name:     *name,
			ParentID: domain.ID(*parent),
		}
		if !fs.Changed("level") {
			node, err := c.locate(ctx, in.ID)
			if err != nil {
				return err
			}
			in.Level = node.Level
			if !fs.Changed("parent") {
				in.ParentID = node.ParentID
			}
			if !fs.Changed("name") {
				in.Name = node.Name
			}
		}
		tree, err = c.app.Categories.Update(ctx, in)
	case "delete":
		tree, err = c.app.Categories.Delete(ctx, domain.ID(*id))
	}
	if err != nil {
		return err
	}

	render.Tree(c.out, tree)
	return nil
}

// locate finds the node being edited when no --level is given. Ids are
// only unique per level, so an id found on several levels is ambiguous.
func (c *CLI) locate(ctx context.Context, id domain.ID) (*catalog.Node, error) {
	tree, err := c.app.Categories.Tree(ctx)
	if err != nil {
		return nil, err
	}
	found := tree.Find(id)
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return nil, fmt.Errorf("%w: no category node with id %q, pass --level", ErrUsage, id)
	default:
		return nil, fmt.Errorf("%w: id %q exists on %d levels, pass --level", ErrUsage, id, len(found))
	}
}

func (c *CLI) listLevel(tree *catalog.Tree, level domain.Level, parent domain.ID) error {
	switch level {
	case domain.LevelCategory:
		render.Options(c.out, tree.ListLevel1())
	case domain.LevelSubCategory:
		render.Options(c.out, tree.ListLevel2(parent))
	case domain.LevelSpecification:
		render.Options(c.out, tree.ListLevel3(parent))
	default:
		return fmt.Errorf("%w: level must be 1, 2 or 3", ErrUsage)
	}
	return nil
}
