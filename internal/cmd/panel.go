package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"golang.org/x/term"

	"github.com/tankpad/tankpad/apiclient"
)

// PanelCommand drives a running tankpad over its API.
type PanelCommand struct {
	Addr     string        `help:"Panel API address" default:"localhost:3243" env:"TANKPAD_API_ADDR"`
	Password string        `help:"API password; '-' prompts on the terminal" env:"TANKPAD_API_PASSWORD"`
	Timeout  time.Duration `help:"Request timeout" default:"5s"`

	State        PanelState        `cmd:"" help:"Print the state of every widget"`
	Dialog       PanelDialog       `cmd:"" help:"Open a dialog (color, speed, volume, brightness, interval)"`
	CloseDialogs PanelCloseDialogs `cmd:"" help:"Close every dialog"`
	Sidebar      PanelSidebar      `cmd:"" help:"Open or close the sidebar"`
	Dropdown     PanelDropdown     `cmd:"" help:"Toggle a sidebar dropdown (engines, led, mp3, arm)"`
	Set          PanelSet          `cmd:"" help:"Set a widget value"`
	Send         PanelSend         `cmd:"" help:"Send the command built from a widget"`
	Raw          PanelRaw          `cmd:"" help:"Send a command verbatim"`
}

// AfterApply builds the client shared by every panel subcommand.
func (p *PanelCommand) AfterApply(kctx *kong.Context) error {
	password := p.Password
	if password == "-" {
		var err error
		if password, err = promptPassword(os.Stdin, os.Stderr); err != nil {
			return err
		}
	}
	cfg := &apiclient.Config{
		DialTimeout:  p.Timeout,
		ReadTimeout:  p.Timeout,
		WriteTimeout: p.Timeout,
		Password:     password,
	}
	kctx.Bind(apiclient.NewWithConfig(p.Addr, cfg))
	return nil
}

func promptPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("--password - needs an interactive terminal")
	}
	fmt.Fprint(out, "API password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

type PanelState struct {
	Format string `help:"Output format" enum:"json,table" default:"json" short:"f"`
}

func (s *PanelState) Run(c *apiclient.Client) error {
	st, err := c.State(context.Background())
	if err != nil {
		return err
	}
	if s.Format == "table" {
		renderState(os.Stdout, st)
		return nil
	}
	return printJSON(st)
}

type PanelDialog struct {
	Name string `arg:"" enum:"color,speed,volume,brightness,interval" help:"Dialog name"`
}

func (d *PanelDialog) Run(c *apiclient.Client) error {
	st, err := c.OpenDialog(context.Background(), d.Name)
	if err != nil {
		return err
	}
	return printJSON(st.Dialogs)
}

type PanelCloseDialogs struct{}

func (PanelCloseDialogs) Run(c *apiclient.Client) error {
	_, err := c.CloseDialogs(context.Background())
	return err
}

type PanelSidebar struct {
	Action string `arg:"" enum:"open,close" help:"open or close"`
	Target string `arg:"" optional:"" default:"gamepad-image" help:"Click target when closing"`
}

func (s *PanelSidebar) Run(c *apiclient.Client) error {
	ctx := context.Background()
	if s.Action == "open" {
		_, err := c.OpenSidebar(ctx)
		return err
	}
	st, err := c.CloseSidebar(ctx, s.Target)
	if err != nil {
		return err
	}
	if st.SidebarOpen {
		return fmt.Errorf("target %q does not close the sidebar", s.Target)
	}
	return nil
}

type PanelDropdown struct {
	Name string `arg:"" enum:"engines,led,mp3,arm" help:"Dropdown name"`
}

func (d *PanelDropdown) Run(c *apiclient.Client) error {
	st, err := c.ToggleDropdown(context.Background(), d.Name)
	if err != nil {
		return err
	}
	return printJSON(st.Dropdowns)
}

type PanelSet struct {
	Widget string `arg:"" help:"Widget name (color, speed, volume, brightness, interval)"`
	Value  string `arg:"" help:"Integer for sliders, #rrggbb for color"`
	Send   bool   `help:"Send the widget's command after setting it"`
}

func (s *PanelSet) Run(c *apiclient.Client) error {
	ctx := context.Background()
	st, err := c.SetWidget(ctx, s.Widget, s.Value)
	if err != nil {
		return err
	}
	if sl, ok := st.Sliders[s.Widget]; ok {
		fmt.Println(sl.Label)
	} else {
		fmt.Println(st.Color)
	}
	if !s.Send {
		return nil
	}
	res, err := c.Send(ctx, s.Widget)
	if err != nil {
		return err
	}
	fmt.Println(res.Command)
	return nil
}

type PanelSend struct {
	Widget string `arg:"" help:"Widget name"`
}

func (s *PanelSend) Run(c *apiclient.Client) error {
	res, err := c.Send(context.Background(), s.Widget)
	if err != nil {
		return err
	}
	fmt.Println(res.Command)
	return nil
}

type PanelRaw struct {
	Command []string `arg:"" help:"Command token and arguments, e.g. SERVO_PLUS base"`
}

func (r *PanelRaw) Run(c *apiclient.Client) error {
	res, err := c.SendRaw(context.Background(), strings.Join(r.Command, " "))
	if err != nil {
		return err
	}
	fmt.Println(res.Command)
	return nil
}
