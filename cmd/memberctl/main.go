// Command memberctl manages members on a running MemberHub server.
//
//	memberctl [-server URL] list
//	memberctl get <id>
//	memberctl add -name NAME -dob YYYY-MM-DD [-interests a,b] [-number N]
//	memberctl update [-name NAME] [-dob YYYY-MM-DD] [-interests a,b] <id>
//	memberctl delete [-yes] <id>
//	memberctl export [-o FILE]
//	memberctl import FILE|-
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dalemusser/memberhub/internal/app/client/memberclient"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const defaultServer = "http://localhost:8080"

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("memberctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	server := global.String("server", envOr("MEMBERCTL_SERVER", defaultServer), "MemberHub base URL")
	verbose := global.Bool("v", false, "log API calls")
	timeout := global.Duration("timeout", 10*time.Second, "overall command timeout")
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: memberctl [-server URL] list|get|add|update|delete|export|import ...")
		return 2
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
			defer func() { _ = l.Sync() }()
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := memberclient.New(*server, memberclient.WithLogger(logger))
	cmd, rest := global.Arg(0), global.Args()[1:]

	var err error
	switch cmd {
	case "list":
		err = cmdList(ctx, c, stdout)
	case "get":
		err = cmdGet(ctx, c, rest, stdout)
	case "add":
		err = cmdAdd(ctx, c, rest, stdout, stderr)
	case "update":
		err = cmdUpdate(ctx, c, rest, stdout, stderr)
	case "delete":
		err = cmdDelete(ctx, c, rest, stdin, stdout, stderr)
	case "export":
		err = cmdExport(ctx, c, rest, stdout, stderr)
	case "import":
		err = cmdImport(ctx, c, rest, stdin, stdout)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "memberctl:", err)
		return 1
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func cmdList(ctx context.Context, c *memberclient.Client, out io.Writer) error {
	list, err := c.List(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE OF BIRTH\tNUMBER\tINTERESTS")
	for _, m := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			m.ID.Hex(), m.Name, m.DateOfBirth.UTC().Format(models.DateLayout),
			m.MemberNumber, strings.Join(m.Interests, ", "))
	}
	return tw.Flush()
}

func cmdGet(ctx context.Context, c *memberclient.Client, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("get: expected exactly one member id")
	}
	m, err := c.Get(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(out, m)
}

func cmdAdd(ctx context.Context, c *memberclient.Client, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(errOut)
	name := fs.String("name", "", "member name (required)")
	dob := fs.String("dob", "", "date of birth, YYYY-MM-DD (required)")
	interests := fs.String("interests", "", "comma-separated interests")
	number := fs.Int64("number", -1, "member number (drawn at random when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" || *dob == "" {
		return errors.New("add: -name and -dob are required")
	}

	// Reuse the session's draw so numbers come from the same range as the UI.
	s := memberclient.NewSession(c, nil)
	s.OpenAdd()
	n := s.MemberNumber()
	if *number >= 0 {
		n = *number
	}

	m, err := c.Create(ctx, memberclient.NewMember{
		Name:         *name,
		DateOfBirth:  *dob,
		MemberNumber: n,
		Interests:    memberclient.SplitInterests(*interests),
	})
	if err != nil {
		return err
	}
	return printJSON(out, m)
}

func cmdUpdate(ctx context.Context, c *memberclient.Client, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(errOut)
	name := fs.String("name", "", "new name")
	dob := fs.String("dob", "", "new date of birth, YYYY-MM-DD")
	interests := fs.String("interests", "", "new comma-separated interests")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("update: expected exactly one member id after the flags")
	}

	u := memberclient.Update{ID: fs.Arg(0)}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			u.Name = name
		case "dob":
			u.DateOfBirth = dob
		case "interests":
			list := memberclient.SplitInterests(*interests)
			u.Interests = &list
		}
	})

	m, err := c.Update(ctx, u)
	if err != nil {
		return err
	}
	return printJSON(out, m)
}

func cmdDelete(ctx context.Context, c *memberclient.Client, args []string, in io.Reader, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(errOut)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("delete: expected exactly one member id after the flags")
	}
	id := fs.Arg(0)

	if !*yes {
		fmt.Fprintf(errOut, "Delete member %s? [y/N] ", id)
		line, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
			fmt.Fprintln(errOut, "cancelled")
			return nil
		}
	}

	m, err := c.Delete(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(out, m)
}

func cmdExport(ctx context.Context, c *memberclient.Client, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(errOut)
	path := fs.String("o", "", "write to FILE instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return c.ExportCSV(ctx, out)
	}

	f, err := os.Create(*path)
	if err != nil {
		return err
	}
	if err := c.ExportCSV(ctx, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func cmdImport(ctx context.Context, c *memberclient.Client, args []string, in io.Reader, out io.Writer) error {
	if len(args) != 1 {
		return errors.New("import: expected a CSV file path, or - for stdin")
	}
	src := in
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	n, err := c.ImportCSV(ctx, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d members\n", n)
	return nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
