package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var errMalformedWeek = errors.New("malformed week file")

var checkFlags struct {
	buffer        int
	maxSlots      int
	minSession    int
	businessStart string
	businessEnd   string
	commit        bool
}

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Проверить недельное расписание из YAML или JSON файла",
	Long: "Проверяет расписание по правилам буфера, длительности, рабочих часов и лимита слотов.\n" +
		"С флагом --commit дополнительно требует хотя бы один слот в каждом активном дне.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	def := domain.DefaultScheduleConfig()

	flags := checkCmd.Flags()
	flags.IntVar(&checkFlags.buffer, "buffer", def.BufferMinutes, "буфер между слотами, минут")
	flags.IntVar(&checkFlags.maxSlots, "max-slots", def.MaxSlotsPerDay, "максимум слотов в дне")
	flags.IntVar(&checkFlags.minSession, "min-session", def.MinSessionMinutes, "минимальная длительность слота, минут")
	flags.StringVar(&checkFlags.businessStart, "business-start", def.BusinessStart.String(), "начало рабочего дня, HH:MM")
	flags.StringVar(&checkFlags.businessEnd, "business-end", def.BusinessEnd.String(), "конец рабочего дня, HH:MM")
	flags.BoolVar(&checkFlags.commit, "commit", false, "проверка перед публикацией")
}

// weekFile формат файла:
//
//	days:
//	  Monday:
//	    active: true
//	    slots:
//	      - {start: "09:00", end: "10:00"}
//
// Не перечисленные дни считаются неактивными
type weekFile struct {
	Days map[string]dayFile `yaml:"days"`
}

type dayFile struct {
	Active *bool      `yaml:"active"`
	Slots  []slotFile `yaml:"slots"`
}

type slotFile struct {
	Start     types.TimeOfDay `yaml:"start"`
	End       types.TimeOfDay `yaml:"end"`
	Available *bool           `yaml:"available"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := checkConfig()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	week, err := parseWeek(data)
	if err != nil {
		return err
	}

	// дальше ошибки - нарушения правил, usage не нужен
	cmd.SilenceUsage = true

	if err := checkWeek(week, cfg, checkFlags.commit); err != nil {
		return fmt.Errorf("%s: %w", availability.Kind(err), err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "ok: %d slots\n", week.TotalSlots())
	return nil
}

func checkConfig() (domain.ScheduleConfig, error) {
	start, err := types.ParseTimeOfDay(checkFlags.businessStart)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("--business-start: %w", err)
	}
	end, err := types.ParseTimeOfDay(checkFlags.businessEnd)
	if err != nil {
		return domain.ScheduleConfig{}, fmt.Errorf("--business-end: %w", err)
	}

	return domain.ScheduleConfig{
		BufferMinutes:     checkFlags.buffer,
		MaxSlotsPerDay:    checkFlags.maxSlots,
		MinSessionMinutes: checkFlags.minSession,
		BusinessStart:     start,
		BusinessEnd:       end,
	}, nil
}

// parseWeek читает YAML; JSON тоже принимается как подмножество YAML
func parseWeek(data []byte) (*domain.WeekSchedule, error) {
	var file weekFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", errMalformedWeek, err)
	}

	week := domain.NewWeekSchedule()
	for _, day := range domain.AllDays() {
		week.Day(day).Active = false
	}

	for name, df := range file.Days {
		day, err := domain.ParseDayOfWeek(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedWeek, err)
		}

		ds := week.Day(day)
		ds.Active = ptr.ValueOr(df.Active, true)
		for _, sf := range df.Slots {
			ds.Slots = append(ds.Slots, domain.Slot{
				Start:     sf.Start,
				End:       sf.End,
				Available: ptr.ValueOr(sf.Available, true),
			})
		}
	}

	availability.Normalize(week)
	return week, nil
}

func checkWeek(week *domain.WeekSchedule, cfg domain.ScheduleConfig, commit bool) error {
	if err := availability.ValidateWeek(week, cfg); err != nil {
		return err
	}
	if commit {
		return availability.ValidateFullSchedule(week)
	}
	return nil
}
