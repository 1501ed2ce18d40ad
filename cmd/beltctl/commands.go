package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"Beltline/internal/calc/conveyor"
	"Beltline/internal/calc/premium/autodesign"
	"Beltline/internal/calc/premium/importer"
	"Beltline/internal/calc/premium/recommend"
	"Beltline/internal/calc/trajectory"
	errs "Beltline/internal/errors"
)

func (c *cli) evaluateCommand() *cobra.Command {
	var (
		name string
		spec conveyor.Spec
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate one conveyor design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.evaluate(name, spec)
			if err != nil {
				return err
			}
			st := conveyor.Assess(res)
			c.log.Infow("evaluated", "material", res.Material.Name, "status", st.Level)
			return writeJSON(cmd.OutOrStdout(), conveyor.Response{RunID: uuid.New(), Result: res, Status: st})
		},
	}
	specFlags(cmd, &name, &spec)
	return cmd
}

func (c *cli) sizeCommand() *cobra.Command {
	var (
		name   string
		preset string
		in     autodesign.SizeInput
	)
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Find the narrowest standard belt that carries the load",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mat, err := c.catalog.Lookup(name)
			if err != nil {
				return err
			}
			if preset != "" {
				v, err := autodesign.PresetSpeed(autodesign.SpeedPreset(preset))
				if err != nil {
					return err
				}
				in.Spec.SpeedMPS = v
			}
			res, err := autodesign.SizeWidth(mat, in)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	specFlags(cmd, &name, &in.Spec)
	cmd.Flags().StringVar(&preset, "preset", "", "speed preset: slow, normal, fast (overrides --speed)")
	cmd.Flags().Float64Var(&in.Previous, "previous", 0, "width to keep when nothing qualifies, mm")
	cmd.Flags().Float64SliceVar(&in.Candidates, "candidates", nil, "candidate widths, mm (default: standard widths)")
	return cmd
}

func (c *cli) trajectoryCommand() *cobra.Command {
	var (
		name   string
		spec   conveyor.Spec
		pulley float64
		points bool
	)
	cmd := &cobra.Command{
		Use:   "trajectory",
		Short: "Trace material discharge off the head pulley",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.evaluate(name, spec)
			if err != nil {
				return err
			}
			if pulley == 0 {
				pulley = res.Components.MinPulleyDiameterMM
			}
			tr, err := conveyor.Trajectory(res, pulley)
			if err != nil {
				return err
			}
			if !points {
				return writeJSON(cmd.OutOrStdout(), struct {
					Trajectory trajectory.Result   `json:"trajectory"`
					Envelope   trajectory.Envelope `json:"envelope"`
				}{tr, tr.Envelope()})
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "t_s\tx_m\ty_m")
			for p := range tr.Points() {
				fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\n", p.T, p.X, p.Y)
			}
			return w.Flush()
		},
	}
	specFlags(cmd, &name, &spec)
	cmd.Flags().Float64Var(&pulley, "pulley", 0, "head pulley diameter, mm (default: selected minimum)")
	cmd.Flags().BoolVar(&points, "points", false, "print the sampled path as a table")
	return cmd
}

func (c *cli) bomCommand() *cobra.Command {
	var (
		name   string
		spec   conveyor.Spec
		pulley float64
	)
	cmd := &cobra.Command{
		Use:   "bom",
		Short: "List the major purchased items for a design",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.evaluate(name, spec)
			if err != nil {
				return err
			}
			b, err := recommend.BillOfMaterials(res, pulley)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ITEM\tDESCRIPTION\tRATING\tQTY")
			for _, l := range b.Lines {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Item, l.Description, l.Rating, l.Quantity)
			}
			return w.Flush()
		},
	}
	specFlags(cmd, &name, &spec)
	cmd.Flags().Float64Var(&pulley, "pulley", 0, "head pulley diameter, mm (default: selected minimum)")
	return cmd
}

func (c *cli) importCommand() *cobra.Command {
	var template string
	cmd := &cobra.Command{
		Use:   "import [workbook.xlsx]",
		Short: "Evaluate every row of a spreadsheet",
		Long: `Evaluate every row of the first sheet of an xlsx workbook.

Row 1 is a header. Columns: material, capacity_tph, width_mm, speed_mps,
length_m, lift_m, trough_deg, lump_mm. Use --template to write a blank
workbook with the header filled in.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if template != "" {
				f, err := importer.Template()
				if err != nil {
					return err
				}
				defer f.Close()
				return f.SaveAs(template)
			}
			if len(args) == 0 {
				return errs.Wrap(errs.ErrInvalidInput, "workbook path required")
			}
			in, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			res, err := importer.Import(c.catalog, in)
			if err != nil {
				return err
			}
			c.log.Infow("imported", "file", args[0], "ok", res.Batch.OK, "failed", res.Batch.Failed, "skipped", len(res.Skipped))
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "write a blank import workbook to this path and exit")
	return cmd
}

func (c *cli) materialsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "List the material catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDENSITY lb/ft3\tREPOSE\tSURCHARGE\tMAX fpm\tLINER")
			for _, p := range c.catalog.All() {
				fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.0f\t%.0f\t%s\n",
					p.Name, p.BulkDensity, p.AngleOfRepose, p.Surcharge, p.MaxSpeed, p.Liner)
			}
			return w.Flush()
		},
	}
}
