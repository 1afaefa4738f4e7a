package command

import (
	"github.com/spf13/cobra"

	"github.com/stolasapp/barre/internal/client"
)

func balletsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ballets",
		Short: "Browse and submit ballets",
	}
	cmd.AddCommand(
		balletsListCommand(),
		balletsGetCommand(),
		balletsSubmitCommand(),
		balletsDeleteCommand(),
	)
	return cmd
}

func balletsListCommand() *cobra.Command {
	var withSteps bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all ballets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			if withSteps {
				merged, err := c.BalletsWithSteps(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, merged)
			}
			ballets, err := c.Ballets(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, ballets)
		},
	}
	cmd.Flags().BoolVar(&withSteps, "steps", false, "include each ballet's step sequence")
	return cmd
}

func balletsGetCommand() *cobra.Command {
	var steps bool
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one ballet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if steps {
				sequence, err := c.BalletSteps(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, sequence)
			}
			ballet, err := c.Ballet(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, ballet)
		},
	}
	cmd.Flags().BoolVar(&steps, "steps", false, "show the ballet's step sequence instead")
	return cmd
}

func balletsSubmitCommand() *cobra.Command {
	var (
		draft       client.BalletDraft
		year        int64
		duration    int64
		difficulty  string
		description string
	)
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new ballet",
		Long:  "Submits a ballet to the catalog. Requires a stored session (see login).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("year") {
				draft.YearPremiered = &year
			}
			if cmd.Flags().Changed("duration") {
				draft.DurationMinutes = &duration
			}
			if cmd.Flags().Changed("difficulty") {
				draft.DifficultyLevel = &difficulty
			}
			if cmd.Flags().Changed("description") {
				draft.Description = &description
			}

			ballet, err := c.SubmitBallet(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return printJSON(cmd, ballet)
		},
	}
	cmd.Flags().StringVar(&draft.Title, "title", "", "ballet title (required)")
	cmd.Flags().StringVar(&draft.Composer, "composer", "", "composer (required)")
	cmd.Flags().StringVar(&draft.Choreographer, "choreographer", "", "choreographer (required)")
	cmd.Flags().Int64Var(&year, "year", 0, "year premiered")
	cmd.Flags().Int64Var(&duration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "difficulty level")
	cmd.Flags().StringVar(&description, "description", "", "description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("composer")
	_ = cmd.MarkFlagRequired("choreographer")
	return cmd
}

func balletsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a ballet",
		Long:  "Removes a ballet from the catalog. Requires an admin session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ballet, err := c.DeleteBallet(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, ballet)
		},
	}
}

func stepsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steps",
		Short: "Browse and submit steps",
	}
	cmd.AddCommand(
		stepsListCommand(),
		stepsGetCommand(),
		stepsSubmitCommand(),
		stepsDeleteCommand(),
	)
	return cmd
}

func stepsListCommand() *cobra.Command {
	var withEquipment bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all steps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			if withEquipment {
				merged, err := c.StepsWithEquipment(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(cmd, merged)
			}
			steps, err := c.Steps(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, steps)
		},
	}
	cmd.Flags().BoolVar(&withEquipment, "equipment", false, "include each step's equipment")
	return cmd
}

func stepsGetCommand() *cobra.Command {
	var equipment bool
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if equipment {
				gear, err := c.StepEquipment(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, gear)
			}
			step, err := c.Step(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, step)
		},
	}
	cmd.Flags().BoolVar(&equipment, "equipment", false, "show the step's equipment instead")
	return cmd
}

func stepsSubmitCommand() *cobra.Command {
	var draft client.StepDraft
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a new step",
		Long:  "Submits a step to the catalog. Requires a stored session (see login).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			step, err := c.SubmitStep(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return printJSON(cmd, step)
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "step name (required)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description (required)")
	cmd.Flags().StringVar(&draft.Difficulty, "difficulty", "", "difficulty (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("difficulty")
	return cmd
}

func stepsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a step",
		Long:  "Removes a step from the catalog. Requires an admin session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			step, err := c.DeleteStep(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, step)
		},
	}
}

func equipmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Browse and submit equipment",
	}
	cmd.AddCommand(
		equipmentListCommand(),
		equipmentGetCommand(),
		equipmentSubmitCommand(),
		equipmentDeleteCommand(),
	)
	return cmd
}

func equipmentListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all equipment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			equipment, err := c.Equipment(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd, equipment)
		},
	}
}

func equipmentGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one equipment entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			equipment, err := c.EquipmentByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, equipment)
		},
	}
}

func equipmentSubmitCommand() *cobra.Command {
	var draft client.EquipmentDraft
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit new equipment",
		Long:  "Submits an equipment entry to the catalog. Requires a stored session (see login).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			equipment, err := c.SubmitEquipment(cmd.Context(), draft)
			if err != nil {
				return err
			}
			return printJSON(cmd, equipment)
		},
	}
	cmd.Flags().StringVar(&draft.Name, "name", "", "equipment name (required)")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description (required)")
	cmd.Flags().StringVar(&draft.Category, "category", "", "category (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func equipmentDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete equipment",
		Long:  "Removes an equipment entry from the catalog. Requires an admin session.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient(cmd.Context())
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			equipment, err := c.DeleteEquipment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, equipment)
		},
	}
}
