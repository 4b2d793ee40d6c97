package login

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"tableflip.dev/gigs/pkg/app"
	"tableflip.dev/gigs/pkg/runner"
)

// Login signs in with a name and the shared password, prompting for
// whichever is missing. On a terminal the password is read without echo.
type Login struct {
	Controller *app.Controller
	Name       string
	Password   string
	In         io.Reader
	Out        io.Writer
}

func (n *Login) Do(ctx context.Context) error {
	out := runner.Output(n.Out)
	in := n.In
	if in == nil {
		in = os.Stdin
	}
	reader := bufio.NewReader(in)

	name := strings.TrimSpace(n.Name)
	if name == "" {
		_, _ = fmt.Fprint(out, "Name: ")
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		name = strings.TrimSpace(line)
	}

	password := n.Password
	if password == "" {
		_, _ = fmt.Fprint(out, "Password: ")
		var err error
		if password, err = readPassword(in, reader); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out)
	}

	if err := n.Controller.Login(ctx, name, password); err != nil {
		if msg := n.Controller.Snapshot().LoginError; msg != "" {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return err
	}
	n.Controller.Wait()
	_, _ = fmt.Fprintf(out, "Signed in as %s\n", name)
	return nil
}

func readPassword(in io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		b, err := term.ReadPassword(int(f.Fd()))
		return string(b), err
	}
	line, err := buffered.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Logout forgets the saved session.
type Logout struct {
	Controller *app.Controller
	Out        io.Writer
}

func (n *Logout) Do(_ context.Context) error {
	n.Controller.SignOut()
	_, _ = fmt.Fprintln(runner.Output(n.Out), "Signed out")
	return nil
}
