package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "availability",
	Short: "SMC-AvailabilityService - недельные расписания менторов",
	Long: "Сервис расписаний менторов: редактирование и проверка недельной доступности, " +
		"блокировка дат и выдача свободных слотов для записи.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
