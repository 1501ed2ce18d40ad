package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Beltline/internal/calc/conveyor"
	"Beltline/internal/logger"
	"Beltline/internal/material"
)

type cli struct {
	catalogFile string
	verbose     bool

	log     *zap.SugaredLogger
	catalog *material.Catalog
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "beltctl",
		Short:        "Belt conveyor design calculations (CEMA)",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				l, err := logger.New(false)
				if err != nil {
					return err
				}
				c.log = l
			} else {
				c.log = zap.NewNop().Sugar()
			}
			cat, err := material.Load(c.catalogFile)
			if err != nil {
				return err
			}
			c.catalog = cat
			return nil
		},
	}
	root.PersistentFlags().StringVar(&c.catalogFile, "catalog", "", "material catalog TOML (default: built-in)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		c.evaluateCommand(),
		c.sizeCommand(),
		c.trajectoryCommand(),
		c.bomCommand(),
		c.importCommand(),
		c.materialsCommand(),
	)
	return root
}

// specFlags binds the conveyor inputs shared by most commands.
func specFlags(cmd *cobra.Command, name *string, s *conveyor.Spec) {
	f := cmd.Flags()
	f.StringVarP(name, "material", "m", "Urea (Prills)", "material name from the catalog")
	f.Float64Var(&s.CapacityTPH, "capacity", 0, "throughput, t/h")
	f.Float64Var(&s.BeltWidthMM, "width", 800, "belt width, mm")
	f.Float64Var(&s.SpeedMPS, "speed", 2.0, "belt speed, m/s")
	f.Float64Var(&s.LengthM, "length", 0, "center-to-center length, m")
	f.Float64Var(&s.LiftM, "lift", 0, "net lift, m (negative for decline)")
	f.Float64Var(&s.TroughDeg, "trough", 35, "idler trough angle, degrees")
	f.Float64Var(&s.MaxLumpMM, "lump", 0, "largest lump, mm")
	_ = cmd.MarkFlagRequired("capacity")
	_ = cmd.MarkFlagRequired("length")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) evaluate(name string, s conveyor.Spec) (conveyor.DesignResult, error) {
	mat, err := c.catalog.Lookup(name)
	if err != nil {
		return conveyor.DesignResult{}, err
	}
	return conveyor.Evaluate(mat, s)
}
