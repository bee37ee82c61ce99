package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"classdesk/internal/api"
	"classdesk/internal/app"
	"classdesk/internal/model"
)

var (
	listClass string
	listJSON  bool

	searchClass string
	searchJSON  bool

	addName  string
	addClass string
	addGPA   string

	updateName  string
	updateClass string
	updateGPA   string

	deleteYes bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pingCmd)

	listCmd.Flags().StringVarP(&listClass, "class", "c", "", "only students in this class")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output JSON")

	searchCmd.Flags().StringVarP(&searchClass, "class", "c", "", "only students in this class")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output JSON")

	addCmd.Flags().StringVarP(&addName, "name", "n", "", "student name (required)")
	addCmd.Flags().StringVarP(&addClass, "class", "c", "", "class name (required)")
	addCmd.Flags().StringVarP(&addGPA, "gpa", "g", "", "grade point average (required)")

	updateCmd.Flags().StringVarP(&updateName, "name", "n", "", "new name")
	updateCmd.Flags().StringVarP(&updateClass, "class", "c", "", "new class name")
	updateCmd.Flags().StringVarP(&updateGPA, "gpa", "g", "", "new grade point average")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List students",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		var students []model.Student
		if strings.TrimSpace(listClass) != "" {
			students, err = env.Client.Search(commandContext(cmd), "", listClass)
		} else {
			students, err = env.Client.List(commandContext(cmd))
		}
		if err != nil {
			return fmt.Errorf("failed to list students: %w", err)
		}
		return writeStudents(cmd.OutOrStdout(), students, listJSON)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search students by name or class",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		students, err := env.Client.Search(commandContext(cmd), args[0], searchClass)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return writeStudents(cmd.OutOrStdout(), students, searchJSON)
	},
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a student",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := model.ParseInput(addName, addClass, addGPA)
		if err != nil {
			return err
		}

		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		st, err := env.Client.Create(commandContext(cmd), in)
		if err != nil {
			return fmt.Errorf("error saving student: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Student saved successfully! (id %d)\n", st.ID)
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a student",
	Long:  "Update a student. Fields that are not given keep their current value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := commandContext(cmd)
		current, err := findStudent(ctx, env.Client, id)
		if err != nil {
			return err
		}

		name, class, gpa := current.Name, current.ClassName, model.FormatGPA(current.GPA)
		if updateName != "" {
			name = updateName
		}
		if updateClass != "" {
			class = updateClass
		}
		if updateGPA != "" {
			gpa = updateGPA
		}
		in, err := model.ParseInput(name, class, gpa)
		if err != nil {
			return err
		}

		if _, err := env.Client.Update(ctx, id, in); err != nil {
			return fmt.Errorf("error saving student: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Student updated!")
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a student",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := commandContext(cmd)
		if !deleteYes {
			st, err := findStudent(ctx, env.Client, id)
			if err != nil {
				return err
			}
			prompt := fmt.Sprintf("Delete %s (%s)?", st.Name, st.ClassName)
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
				return errors.New("delete aborted")
			}
		}

		if err := env.Client.Delete(ctx, id); err != nil {
			if errors.Is(err, api.ErrNotFound) {
				return fmt.Errorf("delete failed: student %d no longer exists", id)
			}
			return fmt.Errorf("delete failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
		return nil
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Test the API connection without starting the UI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setupEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()
		return app.TestConnection(commandContext(cmd), cmd.OutOrStdout(), env.Client)
	},
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid student id %q", value)
	}
	return id, nil
}

// findStudent looks id up in the full listing; the API has no single-record read.
func findStudent(ctx context.Context, client *api.Client, id int64) (model.Student, error) {
	students, err := client.List(ctx)
	if err != nil {
		return model.Student{}, fmt.Errorf("failed to list students: %w", err)
	}
	for _, s := range students {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Student{}, fmt.Errorf("student %d: %w", id, api.ErrNotFound)
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
