package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the stored user profile and calorie targets",
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	p, err := db.GetProfile()
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	if p == nil {
		fmt.Println("No profile saved yet. POST /api/profile to create one.")
		return nil
	}

	fmt.Println("## Profile")
	fmt.Println()
	if p.BirthDate != "" {
		fmt.Printf("  born:      %s (age %d)\n", p.BirthDate, p.Age)
	} else {
		fmt.Printf("  age:       %d\n", p.Age)
	}
	fmt.Printf("  sex:       %s\n", p.Sex)
	fmt.Printf("  height:    %d'%d\"\n", p.HeightFeet, p.HeightInches)
	fmt.Printf("  weight:    %.1f lbs\n", p.Weight)
	fmt.Printf("  activity:  %s\n", p.ActivityLevel)
	fmt.Println()
	fmt.Printf("  bmr:       %.0f\n", p.BMR)
	fmt.Printf("  tdee:      %.0f\n", p.TDEE)
	fmt.Printf("  target:    %.0f\n", p.CalorieTarget)
	return nil
}
