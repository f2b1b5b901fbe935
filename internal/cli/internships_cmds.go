package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jrsteele09/internship-portal/internships"
	"github.com/jrsteele09/internship-portal/views"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newInternshipsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "internships",
		Aliases: []string{"internship", "i"},
		Short:   "Browse and manage internship postings",
	}
	cmd.AddCommand(
		newInternshipsListCmd(app),
		newInternshipsShowCmd(app),
		newInternshipsCreateCmd(app),
		newInternshipsUpdateCmd(app),
	)
	return cmd
}

func newInternshipsListCmd(app *App) *cobra.Command {
	var (
		search string
		page   int
		mine   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List postings, open ones first",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "Match title, mentor or skills")
	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only postings you created")

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		list, err := app.client.ListInternships(ctx)
		if err != nil {
			return err
		}
		if mine {
			u, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			list = views.PostedBy(list, u)
		}
		list = views.Search(views.SortOpenFirst(list), search)
		shown, pages := views.Paginate(list, page, views.PageSize)

		out := cmd.OutOrStdout()
		if len(shown) == 0 {
			heading(out, "No internships found")
			return nil
		}
		heading(out, "%d internship(s), page %d of %d", len(list), min(max(page, 1), pages), pages)
		t := newTable(out, "ID", "TITLE", "MENTOR", "DURATION", "STIPEND", "SKILLS", "STATUS")
		for _, i := range shown {
			t.row(strconv.FormatInt(i.ID, 10), i.Title, i.Mentor, i.Duration, i.Stipend, i.Skills, internshipStatus(i.Status))
		}
		return t.flush()
	})
	return cmd
}

func newInternshipsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one posting",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		i, err := app.client.GetInternship(ctx, id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		heading(out, "%s", i.Title)
		t := newTable(out, "FIELD", "VALUE")
		t.row("id", strconv.FormatInt(i.ID, 10))
		t.row("mentor", i.Mentor)
		t.row("duration", i.Duration)
		t.row("stipend", i.Stipend)
		t.row("skills", i.Skills)
		t.row("status", internshipStatus(i.Status))
		t.row("posted by", i.Username)
		if err := t.flush(); err != nil {
			return err
		}
		if i.Description != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, i.Description)
		}
		return nil
	})
	return cmd
}

// internshipFlags binds the editable posting fields
type internshipFlags struct {
	title, mentor, duration, stipend, description, skills, status string
}

func (f *internshipFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Title")
	fs.StringVar(&f.mentor, "mentor", "", "Mentor name")
	fs.StringVar(&f.duration, "duration", "", "Duration, e.g. \"3 months\"")
	fs.StringVar(&f.stipend, "stipend", "", "Stipend")
	fs.StringVar(&f.description, "description", "", "Description")
	fs.StringVar(&f.skills, "skills", "", "Comma separated required skills")
	fs.StringVar(&f.status, "status", "", "Open or Closed")
}

// apply copies the flags the user set onto i
func (f *internshipFlags) apply(fs *pflag.FlagSet, i *internships.Internship) {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("title", &i.Title, f.title)
	set("mentor", &i.Mentor, f.mentor)
	set("duration", &i.Duration, f.duration)
	set("stipend", &i.Stipend, f.stipend)
	set("description", &i.Description, f.description)
	set("skills", &i.Skills, f.skills)
	if fs.Changed("status") {
		i.Status = internships.Status(f.status)
	}
}

func newInternshipsCreateCmd(app *App) *cobra.Command {
	var flags internshipFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new internship (mentors and admins)",
		Args:  cobra.NoArgs,
	}
	flags.bind(cmd.Flags())

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		var i internships.Internship
		flags.apply(cmd.Flags(), &i)
		created, err := app.client.CreateInternship(ctx, i)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created internship %d (%s)\n", created.ID, created.Status)
		return nil
	})
	return cmd
}

func newInternshipsUpdateCmd(app *App) *cobra.Command {
	var flags internshipFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a posting (mentors and admins)",
		Args:  cobra.ExactArgs(1),
	}
	flags.bind(cmd.Flags())

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		i, err := app.client.GetInternship(ctx, id)
		if err != nil {
			return err
		}
		flags.apply(cmd.Flags(), i)
		updated, err := app.client.UpdateInternship(ctx, id, *i)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated internship %d (%s)\n", updated.ID, updated.Status)
		return nil
	})
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
