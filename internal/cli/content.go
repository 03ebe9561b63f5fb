package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/scewiki/internal/common"
	"github.com/dmitrijs2005/scewiki/internal/models"
)

var errVerifyFirst = fmt.Errorf("%w: verify your email to open archive records", common.ErrorUnauthorized)

// canOpen gates detail views: listings are public, reading a record needs a
// logged-in user who is verified or an admin.
func (a *App) canOpen(ctx context.Context) error {
	a.refresh(ctx)
	if !a.isLoggedIn() {
		return fmt.Errorf("%w: log in to open archive records", common.ErrorUnauthorized)
	}
	if !a.current.CanReadContent() {
		return errVerifyFirst
	}
	return nil
}

// ListObjects prints the objects matching args: free text plus an
// optional class=<CLASS> term.
func (a *App) ListObjects(ctx context.Context, args []string) error {
	text, value, err := splitFilter(args, "class")
	if err != nil {
		return err
	}
	f := models.ObjectFilter{Text: text}
	if value != "" {
		if f.Class, err = models.ParseObjectClass(value); err != nil {
			return fmt.Errorf("%w: class must be one of %s", common.ErrorInvalid, strings.Join(objectClassNames(), "|"))
		}
	}

	list, err := a.content.ListObjects(ctx, f)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		if len(args) > 0 {
			fmt.Fprintln(a.out, "No matching objects.")
		} else {
			fmt.Fprintln(a.out, "No objects yet.")
		}
		return nil
	}
	for _, o := range list {
		fmt.Fprintf(a.out, "%-12s %-10s %-12s %s\n", o.ID, o.Number, o.ObjectClass, o.Name)
	}
	return nil
}

func (a *App) ShowObject(ctx context.Context, id string) error {
	if err := a.canOpen(ctx); err != nil {
		return err
	}
	o, err := a.content.GetObject(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  %s\n", o.Number, o.Name)
	fmt.Fprintf(a.out, "Object class: %s\n", o.ObjectClass)
	fmt.Fprintf(a.out, "Created: %s by %s\n\n", o.CreatedAt.Format("2006-01-02 15:04"), o.CreatedBy)
	fmt.Fprintf(a.out, "Special containment procedures:\n%s\n\n", o.Containment)
	fmt.Fprintf(a.out, "Description:\n%s\n", o.Description)
	if o.AdditionalInfo != "" {
		fmt.Fprintf(a.out, "\nAdditional information:\n%s\n", o.AdditionalInfo)
	}
	return nil
}

// ListPosts prints the posts matching args: free text plus an optional
// category=<CATEGORY> term.
func (a *App) ListPosts(ctx context.Context, args []string) error {
	text, value, err := splitFilter(args, "category")
	if err != nil {
		return err
	}
	f := models.PostFilter{Text: text}
	if value != "" {
		if f.Category, err = models.ParsePostCategory(value); err != nil {
			return fmt.Errorf("%w: category must be one of %s", common.ErrorInvalid, strings.Join(postCategoryNames(), "|"))
		}
	}

	list, err := a.content.ListPosts(ctx, f)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		if len(args) > 0 {
			fmt.Fprintln(a.out, "No matching posts.")
		} else {
			fmt.Fprintln(a.out, "No posts yet.")
		}
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(a.out, "%-10s %-9s %s  %s\n", p.ID, p.Category, p.CreatedAt.Format("2006-01-02"), p.Title)
	}
	return nil
}

func (a *App) ShowPost(ctx context.Context, id string) error {
	if err := a.canOpen(ctx); err != nil {
		return err
	}
	p, err := a.content.GetPost(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s [%s]\n", p.Title, p.Category)
	fmt.Fprintf(a.out, "Created: %s by %s\n\n", p.CreatedAt.Format("2006-01-02 15:04"), p.CreatedBy)
	fmt.Fprintln(a.out, p.Content)
	return nil
}

func (a *App) AddObject(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}

	var in models.NewSCEObject
	var err error
	if in.Number, err = getSimpleText(a.reader, "Object number (e.g. SCE-173)", a.out); err != nil {
		return err
	}
	if in.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return err
	}
	class, err := GetChoice(a.reader, "Object class", objectClassNames(), a.out)
	if err != nil {
		return err
	}
	in.ObjectClass = models.ObjectClass(class)
	if in.Description, err = GetMultiline(a.reader, "Description", a.out); err != nil {
		return err
	}
	if in.Containment, err = GetMultiline(a.reader, "Special containment procedures", a.out); err != nil {
		return err
	}
	if in.AdditionalInfo, err = GetMultiline(a.reader, "Additional information (optional)", a.out); err != nil {
		return err
	}

	o, err := a.content.CreateObject(ctx, a.session(), in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created", o.ID)
	return nil
}

func (a *App) AddPost(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}

	var in models.NewPost
	var err error
	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	category, err := GetChoice(a.reader, "Category", postCategoryNames(), a.out)
	if err != nil {
		return err
	}
	in.Category = models.PostCategory(category)
	if in.Content, err = GetMultiline(a.reader, "Content", a.out); err != nil {
		return err
	}

	p, err := a.content.CreatePost(ctx, a.session(), in)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Created", p.ID)
	return nil
}

// splitFilter separates a key=value term from the search words in args.
//
//	objects pale humanoid class=euclid  ->  "pale humanoid", "euclid"
func splitFilter(args []string, key string) (text, value string, err error) {
	var words []string
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			words = append(words, arg)
			continue
		}
		if !strings.EqualFold(k, key) || value != "" {
			return "", "", fmt.Errorf("%w: unknown filter %q, use %s=<value>", common.ErrorInvalid, arg, key)
		}
		value = v
	}
	return strings.Join(words, " "), value, nil
}

func objectClassNames() []string {
	names := make([]string, len(models.ObjectClasses))
	for i, c := range models.ObjectClasses {
		names[i] = string(c)
	}
	return names
}

func postCategoryNames() []string {
	names := make([]string, len(models.PostCategories))
	for i, c := range models.PostCategories {
		names[i] = string(c)
	}
	return names
}

func roleNames() string {
	names := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, "|")
}
