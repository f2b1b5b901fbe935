package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jrsteele09/internship-portal/applications"
	"github.com/jrsteele09/internship-portal/internal/utils"
	"github.com/jrsteele09/internship-portal/portal"
	"github.com/jrsteele09/internship-portal/session"
	"github.com/jrsteele09/internship-portal/views"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newApplicationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "applications",
		Aliases: []string{"application", "a"},
		Short:   "Submit and review applications",
	}
	cmd.AddCommand(
		newApplicationsListCmd(app),
		newApplicationsApplyCmd(app),
		newApplicationsStatusCmd(app),
		newApplicationsExportCmd(app),
	)
	return cmd
}

// applicationFilterFlags are shared by list and export
type applicationFilterFlags struct {
	internshipID int64
	userID       int64
	status       string
}

func (f *applicationFilterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.internshipID, "internship", 0, "Only applications for this internship id")
	cmd.Flags().Int64Var(&f.userID, "user", 0, "Only applications from this user id")
	cmd.Flags().StringVar(&f.status, "status", string(views.FilterAll), "all, shortlisted or not_shortlisted")
}

func (f *applicationFilterFlags) fetch(ctx context.Context, app *App) ([]applications.Application, error) {
	status, err := views.ParseStatusFilter(f.status)
	if err != nil {
		return nil, err
	}
	list, err := app.client.ListApplications(ctx)
	if err != nil {
		return nil, err
	}
	return views.FilterApplications(list, views.ApplicationFilter{
		InternshipID: f.internshipID,
		UserID:       f.userID,
		Status:       status,
	}), nil
}

func newApplicationsListCmd(app *App) *cobra.Command {
	var filter applicationFilterFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications; students only see their own",
		Args:  cobra.NoArgs,
	}
	filter.bind(cmd)

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		list, err := filter.fetch(ctx, app)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			heading(out, "No applications found")
			return nil
		}
		heading(out, "%d application(s)", len(list))
		t := newTable(out, "ID", "INTERNSHIP", "NAME", "EMAIL", "PHONE", "STATUS", "RESUME")
		for _, a := range list {
			t.row(strconv.FormatInt(a.ID, 10), strconv.FormatInt(a.InternshipID, 10), a.FullName(),
				a.Email, a.PhoneNumber, applicationStatus(a.Status), utils.Value(a.ResumeURL))
		}
		return t.flush()
	})
	return cmd
}

func newApplicationsApplyCmd(app *App) *cobra.Command {
	var (
		form       portal.ApplicationForm
		resumePath string
		idCardPath string
	)
	cmd := &cobra.Command{
		Use:   "apply <internship-id>",
		Short: "Apply to an open internship",
		Args:  cobra.ExactArgs(1),
	}
	fs := cmd.Flags()
	fs.StringVar(&form.FirstName, "first-name", "", "First name")
	fs.StringVar(&form.LastName, "last-name", "", "Last name")
	fs.StringVar(&form.Address, "address", "", "Postal address")
	fs.StringVar(&form.Email, "email", "", "Email address")
	fs.StringVar(&form.PhoneNumber, "phone", "", "10-digit phone number")
	fs.StringVar(&form.CollegeName, "college", "", "College name")
	fs.StringVar(&form.Department, "department", "", "Department")
	fs.StringVar(&form.CustomDepartment, "custom-department", "", "Department when not listed")
	fs.StringVar(&form.RollNo, "roll-no", "", "Roll number")
	fs.StringVar(&form.Course, "course", "", "Course")
	fs.StringVar(&form.YearOfStudy, "year", "", "Year of study")
	fs.StringVar(&form.Skills, "skills", "", "Comma separated skills; defaults to all the posting requires")
	fs.StringVar(&form.AddSkills, "add-skills", "none", "Additional skills")
	fs.StringVar(&resumePath, "resume", "", "Resume PDF")
	fs.StringVar(&idCardPath, "id-card", "", "Student ID card PDF")

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		internship, err := app.client.GetInternship(ctx, id)
		if err != nil {
			return err
		}

		if _, err := app.currentUser(ctx); err != nil && !errors.Is(err, session.ErrNotLoggedIn) {
			return err
		}
		page := views.NewPage(app.session)
		mode, err := page.Apply(*internship)
		if err != nil {
			return err
		}
		if _, ok := mode.(views.LoggedOutPrompt); ok {
			return fmt.Errorf("log in to apply: portalctl login <username>")
		}

		form.InternshipID = id
		if !cmd.Flags().Changed("skills") {
			form.Skills = utils.JoinList(internship.SkillList())
		}
		if errs := views.ValidateApplication(form, *internship); errs != nil {
			fields := map[string][]string{}
			for k, v := range errs {
				fields[k] = []string{v}
			}
			return fmt.Errorf("%s", formatFields(fields))
		}

		closers, err := attachFiles(&form, resumePath, idCardPath)
		defer func() {
			for _, c := range closers {
				_ = c.Close()
			}
		}()
		if err != nil {
			return err
		}

		created, err := app.client.SubmitApplication(ctx, form)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		heading(out, "Application %d submitted for %s", created.ID, internship.Title)
		fmt.Fprintln(out, "Status:", applicationStatus(created.Status))
		return nil
	})
	return cmd
}

func attachFiles(form *portal.ApplicationForm, resumePath, idCardPath string) ([]io.Closer, error) {
	var closers []io.Closer
	open := func(path string, name *string, r *io.Reader) error {
		if path == "" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		closers = append(closers, f)
		*name = filepath.Base(path)
		*r = f
		return nil
	}
	if err := open(resumePath, &form.ResumeName, &form.Resume); err != nil {
		return closers, err
	}
	if err := open(idCardPath, &form.IDCardName, &form.IDCard); err != nil {
		return closers, err
	}
	return closers, nil
}

func newApplicationsStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <Applied|Shortlisted|Not Shortlisted>",
		Short: "Set the review status of an application (mentors and admins)",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		status := applications.Status(args[1])
		if err := applications.ValidateStatus(status); err != nil {
			return err
		}
		updated, err := app.client.UpdateApplicationStatus(ctx, id, status)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Application %d is now %s\n", updated.ID, applicationStatus(updated.Status))
		return nil
	})
	return cmd
}

func newApplicationsExportCmd(app *App) *cobra.Command {
	var (
		filter applicationFilterFlags
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write applications as YAML or JSON",
		Args:  cobra.NoArgs,
	}
	filter.bind(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "yaml or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")

	cmd.RunE = app.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		list, err := filter.fetch(ctx, app)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			defer f.Close()
			out = f
		}
		return exportApplications(out, format, list)
	})
	return cmd
}

// exportedApplication is the flat record written by export
type exportedApplication struct {
	ID           int64  `yaml:"id" json:"id"`
	InternshipID int64  `yaml:"internship_id" json:"internship_id"`
	UserID       int64  `yaml:"user_id" json:"user_id"`
	Name         string `yaml:"name" json:"name"`
	Email        string `yaml:"email" json:"email"`
	Phone        string `yaml:"phone" json:"phone"`
	College      string `yaml:"college,omitempty" json:"college,omitempty"`
	Department   string `yaml:"department,omitempty" json:"department,omitempty"`
	Course       string `yaml:"course,omitempty" json:"course,omitempty"`
	Year         string `yaml:"year,omitempty" json:"year,omitempty"`
	Skills       string `yaml:"skills,omitempty" json:"skills,omitempty"`
	Status       string `yaml:"status" json:"status"`
	ResumeURL    string `yaml:"resume_url,omitempty" json:"resume_url,omitempty"`
	IDCardURL    string `yaml:"id_card_url,omitempty" json:"id_card_url,omitempty"`
}

func exportApplications(w io.Writer, format string, list []applications.Application) error {
	records := make([]exportedApplication, 0, len(list))
	for _, a := range list {
		department := a.Department
		if a.CustomDepartment != "" {
			department = a.CustomDepartment
		}
		records = append(records, exportedApplication{
			ID:           a.ID,
			InternshipID: a.InternshipID,
			UserID:       a.UserID,
			Name:         a.FullName(),
			Email:        a.Email,
			Phone:        a.PhoneNumber,
			College:      a.CollegeName,
			Department:   department,
			Course:       a.Course,
			Year:         a.YearOfStudy,
			Skills:       a.Skills,
			Status:       string(a.Status),
			ResumeURL:    utils.Value(a.ResumeURL),
			IDCardURL:    utils.Value(a.IDCardURL),
		})
	}

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		return enc.Encode(records)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	return fmt.Errorf("unsupported format %q", format)
}
