// Package interactive provides the interactive command-line interface
// for editing a credential file.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/stationmgr/stationmgr-go/pkg/credentials"
)

// Editor handles interactive editing of one credential file.
// Edits stay in memory until an explicit save.
type Editor struct {
	store *credentials.FileStore
	creds []credentials.Credential
	dirty bool
	rl    *readline.Instance
}

// New creates an editor over the credential file at path. A missing or
// empty file starts an empty list rather than failing; the file appears
// on the first save.
func New(path string) (*Editor, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "cred> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	e := &Editor{
		store: credentials.NewFileStore(path),
		rl:    rl,
	}

	creds, err := e.store.Load()
	if err == nil {
		e.creds = creds
	}

	return e, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
func (e *Editor) Stdout() io.Writer {
	return e.rl.Stdout()
}

// Run starts the interactive command loop.
func (e *Editor) Run(ctx context.Context, cancel context.CancelFunc) {
	defer e.rl.Close()

	fmt.Fprintf(e.Stdout(), "Editing %s (%d networks)\n", e.store.Path(), len(e.creds))
	e.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := e.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			e.exit(cancel)
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			e.printHelp()

		case "list", "ls":
			e.cmdList()

		case "add":
			e.cmdAdd(args)

		case "remove", "rm":
			e.cmdRemove(args)

		case "priority", "prio":
			e.cmdPriority(args)

		case "recent":
			e.cmdRecent(args)

		case "sort":
			credentials.SortByPriority(e.creds)
			e.dirty = true
			e.cmdList()

		case "save":
			e.cmdSave()

		case "reload":
			e.cmdReload()

		case "quit", "exit", "q":
			e.exit(cancel)
			return

		default:
			fmt.Fprintf(e.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (e *Editor) exit(cancel context.CancelFunc) {
	if e.dirty {
		fmt.Fprintln(e.Stdout(), "Warning: unsaved changes discarded")
	}
	fmt.Fprintln(e.Stdout(), "Exiting...")
	cancel()
}

func (e *Editor) printHelp() {
	fmt.Fprintln(e.Stdout(), `
Credential File Commands:
  list                       - List networks (index, ssid, priority, recent)
  add <ssid> [password] [prio] - Add a network (default priority 0)
  remove <index|ssid>        - Remove a network
  priority <index|ssid> <n>  - Set a network's priority
  recent <index|ssid>        - Mark a network as last connected
  sort                       - Sort the list by ascending priority
  save                       - Write the list back to the file
  reload                     - Discard edits and reload from the file
  help                       - Show this help
  quit                       - Exit (unsaved edits are discarded)`)
}

func (e *Editor) cmdList() {
	if len(e.creds) == 0 {
		fmt.Fprintln(e.Stdout(), "No networks")
		return
	}
	for i, c := range e.creds {
		recent := ""
		if c.ConnectedLast {
			recent = "  (last connected)"
		}
		secured := "open"
		if c.Password != "" {
			secured = "psk"
		}
		fmt.Fprintf(e.Stdout(), "%3d  %-32s prio=%-4d %s%s\n", i, c.SSID, c.Priority, secured, recent)
	}
}

func (e *Editor) cmdAdd(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(e.Stdout(), "Usage: add <ssid> [password] [priority]")
		return
	}

	cred := credentials.Credential{SSID: args[0]}
	if len(args) > 1 {
		cred.Password = args[1]
	}
	if len(args) > 2 {
		prio, err := strconv.Atoi(args[2])
		if err != nil {
			fmt.Fprintf(e.Stdout(), "Bad priority %q\n", args[2])
			return
		}
		cred.Priority = prio
	}

	for _, c := range e.creds {
		if c.SSID == cred.SSID {
			fmt.Fprintf(e.Stdout(), "Network %q already present\n", cred.SSID)
			return
		}
	}

	e.creds = append(e.creds, cred)
	e.dirty = true
	fmt.Fprintf(e.Stdout(), "Added %q\n", cred.SSID)
}

func (e *Editor) cmdRemove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.Stdout(), "Usage: remove <index|ssid>")
		return
	}
	i := e.resolve(args[0])
	if i < 0 {
		return
	}

	removed := e.creds[i].SSID
	e.creds = append(e.creds[:i], e.creds[i+1:]...)
	e.dirty = true
	fmt.Fprintf(e.Stdout(), "Removed %q\n", removed)
}

func (e *Editor) cmdPriority(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(e.Stdout(), "Usage: priority <index|ssid> <n>")
		return
	}
	i := e.resolve(args[0])
	if i < 0 {
		return
	}
	prio, err := strconv.Atoi(args[1])
	if err != nil {
		fmt.Fprintf(e.Stdout(), "Bad priority %q\n", args[1])
		return
	}

	e.creds[i].Priority = prio
	e.dirty = true
	fmt.Fprintf(e.Stdout(), "%q priority set to %d\n", e.creds[i].SSID, prio)
}

func (e *Editor) cmdRecent(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(e.Stdout(), "Usage: recent <index|ssid>")
		return
	}
	i := e.resolve(args[0])
	if i < 0 {
		return
	}

	credentials.MarkConnected(e.creds, e.creds[i].SSID)
	e.dirty = true
	fmt.Fprintf(e.Stdout(), "%q marked as last connected\n", e.creds[i].SSID)
}

func (e *Editor) cmdSave() {
	if err := e.store.Save(e.creds); err != nil {
		fmt.Fprintf(e.Stdout(), "Save failed: %v\n", err)
		return
	}
	e.dirty = false
	fmt.Fprintf(e.Stdout(), "Saved %d networks to %s\n", len(e.creds), e.store.Path())
}

func (e *Editor) cmdReload() {
	creds, err := e.store.Load()
	if err != nil {
		fmt.Fprintf(e.Stdout(), "Reload failed: %v\n", err)
		return
	}
	e.creds = creds
	e.dirty = false
	if n := e.store.SkippedLines(); n > 0 {
		fmt.Fprintf(e.Stdout(), "Skipped %d malformed lines\n", n)
	}
	fmt.Fprintf(e.Stdout(), "Loaded %d networks\n", len(e.creds))
}

// resolve turns an index or SSID argument into a list index, or -1 after
// printing a diagnostic.
func (e *Editor) resolve(arg string) int {
	if i, err := strconv.Atoi(arg); err == nil {
		if i < 0 || i >= len(e.creds) {
			fmt.Fprintf(e.Stdout(), "Index %d out of range\n", i)
			return -1
		}
		return i
	}
	for i, c := range e.creds {
		if c.SSID == arg {
			return i
		}
	}
	fmt.Fprintf(e.Stdout(), "No network %q\n", arg)
	return -1
}
