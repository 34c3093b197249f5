package commands

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teamsgen/teamsgen/internal/editor"
	"github.com/teamsgen/teamsgen/internal/errors"
	"github.com/teamsgen/teamsgen/internal/logging"
	"github.com/teamsgen/teamsgen/internal/options"
	"github.com/teamsgen/teamsgen/internal/prompt"
	"github.com/teamsgen/teamsgen/pkg/fileutil"
)

// MarkerFileName is written into a freshly created solution so other
// tooling can recognize it as generated.
const MarkerFileName = ".teamsgen"

// markerContent is the fixed marker payload.
const markerContent = "init"

// parentFolder holds the value of the --folder flag.
var parentFolder string

// noOpen holds the value of the --no-open flag.
var noOpen bool

func init() {
	createCmd.Flags().StringVar(&parentFolder, "folder", "",
		"parent folder for the new solution; skips the folder pick")
	createCmd.Flags().BoolVar(&noOpen, "no-open", false,
		"do not open the generated solution in the editor")

	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Teams app solution and open it in the editor",
	Long: `create picks a parent folder, asks for a solution name, runs the
generator in a subprocess and opens the generated solution in the
editor. The solution name prompt repeats until it names a folder that
does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, _ []string) error {
	log := logging.FromContext(cmd.Context())
	p := prompt.New()

	parent := parentFolder
	if parent == "" {
		var err error
		parent, err = pickParentFolder(p)
		if err != nil {
			return err
		}
	}
	parent, err := filepath.Abs(parent)
	if err != nil {
		return errors.Wrap(err, "resolving parent folder")
	}
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return errors.Newf("%s is not a folder", parent)
	}

	open := editor.OpenFolder
	if noOpen {
		open = nil
	}

	dir, err := createSolution(p, parent, runGenerator, open)
	if err != nil {
		// Keep the notification generic: the subprocess already printed
		// its own diagnostics.
		log.Error("the solution could not be generated")
		return err
	}

	log.Info("solution created", "dir", dir)
	return nil
}

// generatorRunner runs the generate flow for a solution name inside a
// parent folder. Production spawns this binary as a subprocess.
type generatorRunner func(parentDir, solutionName string) error

// runGenerator re-invokes this executable so the generate flow runs
// with its own working directory and prompt cycle.
func runGenerator(parentDir, solutionName string) error {
	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "locating executable")
	}

	cmd := exec.Command(exe, "generate", "--solution-name", solutionName)
	cmd.Dir = parentDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// createSolution asks for a solution name that does not collide with
// an existing subfolder, runs the generator and marks the result. The
// generator is never spawned for a folder that already exists.
func createSolution(p *prompt.Prompter, parent string, run generatorRunner, open func(string) error) (string, error) {
	var name string
	for {
		answer, err := p.Input("What is your solution name?", "teams-app", options.ValidateSolutionName)
		if err != nil {
			return "", err
		}
		if _, err := os.Stat(filepath.Join(parent, answer)); err == nil {
			if confirmed, err := p.Confirm("That folder already exists. Pick another name?", true); err != nil {
				return "", err
			} else if !confirmed {
				return "", errors.Wrapf(errors.ErrFolderExists, "%s", filepath.Join(parent, answer))
			}
			continue
		}
		name = answer
		break
	}

	if err := run(parent, name); err != nil {
		return "", errors.Wrap(err, "generating solution")
	}

	dir := filepath.Join(parent, name)
	if err := fileutil.AtomicWriteFile(filepath.Join(dir, MarkerFileName), []byte(markerContent), 0o644); err != nil {
		return "", errors.Wrap(err, "writing solution marker")
	}

	if open != nil {
		if err := open(dir); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// pickParentFolder offers the working directory and its subfolders.
func pickParentFolder(p *prompt.Prompter) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "determining working directory")
	}

	choices := []prompt.Choice{{Value: cwd, Name: ". (" + cwd + ")"}}
	entries, err := os.ReadDir(cwd)
	if err != nil {
		return "", errors.Wrap(err, "listing folders")
	}
	for _, e := range entries {
		if !e.IsDir() || e.Name()[0] == '.' {
			continue
		}
		choices = append(choices, prompt.Choice{
			Value: filepath.Join(cwd, e.Name()),
			Name:  e.Name(),
		})
	}

	return p.Select("Where should the solution be created?", choices)
}
