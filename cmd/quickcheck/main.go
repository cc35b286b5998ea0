package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dchest/siphash"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	quickcheck "github.com/agrif/pyquickcheck"
)

func main() {
	app := cli.NewApp()
	app.Name = "quickcheck"
	app.Usage = "draw and shrink arbitrary values of a declared type"
	app.Commands = []cli.Command{
		sample(),
		shrink(),
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

// seed keys for hashing textual seeds; fixed so string seeds replay.
const seedKey0, seedKey1 = 0x7071636865636b21, 0x616772696671632e

// parseSeed accepts a decimal integer or any other string, which is hashed
// to a 64-bit seed with SipHash so that named seeds stay reproducible.
func parseSeed(s string) int64 {
	if s == "" {
		return 1
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return int64(siphash.Hash(seedKey0, seedKey1, []byte(s)))
}

func typeFlagValue(c *cli.Context) (quickcheck.Descriptor, error) {
	t := c.String("type")
	if t == "" {
		return quickcheck.Descriptor{}, fmt.Errorf("--type is required")
	}
	return quickcheck.ParseDescriptor(t)
}

func printJSON(v quickcheck.Value) error {
	buf, err := json.Marshal(v.Interface())
	if err != nil {
		return err
	}
	fmt.Println(string(buf))
	return nil
}

func sample() cli.Command {
	return cli.Command{
		Name:      "sample",
		Usage:     "generate values of a type, e.g. quickcheck sample -t 'sequence(integer)'",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "type, t", Usage: "type descriptor, e.g. mapping(string,integer)"},
			cli.StringFlag{Name: "seed, s", Usage: "integer or textual seed", Value: "1"},
			cli.IntFlag{Name: "size", Usage: "size envelope for magnitudes and lengths", Value: 30},
			cli.IntFlag{Name: "count, n", Usage: "how many values to draw", Value: 1},
		},
		Action: func(c *cli.Context) error {
			desc, err := typeFlagValue(c)
			if err != nil {
				return err
			}
			gen, _, err := quickcheck.DefaultRegistry().Resolve(desc)
			if err != nil {
				return err
			}
			src := quickcheck.NewSource(parseSeed(c.String("seed")))
			for i := 0; i < c.Int("count"); i++ {
				v, err := gen(src, c.Int("size"))
				if err != nil {
					return err
				}
				if err := printJSON(v); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func shrink() cli.Command {
	return cli.Command{
		Name:      "shrink",
		Usage:     "list the shrink candidates of a JSON value, simplest first",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "type, t", Usage: "type descriptor of the value"},
			cli.StringFlag{Name: "value, v", Usage: "JSON encoding of the value to shrink"},
		},
		Action: func(c *cli.Context) error {
			desc, err := typeFlagValue(c)
			if err != nil {
				return err
			}
			var raw interface{}
			if err := json.Unmarshal([]byte(c.String("value")), &raw); err != nil {
				return fmt.Errorf("bad --value: %v", err)
			}
			val, err := quickcheck.FromInterface(desc, raw)
			if err != nil {
				return err
			}
			candidates, err := quickcheck.DefaultRegistry().Shrink(val)
			if err != nil {
				return err
			}
			for _, cand := range candidates {
				if err := printJSON(cand); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
