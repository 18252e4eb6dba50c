// Command gen-dataset writes a synthetic employee CSV for local runs and
// load experiments. Rows are drawn from tiered performer profiles so the
// ranking views have meaningful spread.
package main

import (
	"crypto/rand"
	"encoding/csv"
	"flag"
	"fmt"
	"math/big"
	"os"
	"strconv"
	"time"
)

const (
	defaultRows = 500

	randomFloatDivisor = 1000000
	tierDivisor        = 10
	startingEmployeeID = 1000
	maxTenureDays      = 10 * 365
)

// Performer tier cases. Weights skew toward average performers.
const (
	caseElitePerformer   = 0
	caseHighPerformer    = 1
	caseLowPerformer     = 2
	caseStrugglingHire   = 3
	caseAveragePerformer = 4 // cases 4..9
)

var departments = []string{"Engineering", "Sales", "HR", "Marketing", "Finance", "Operations"}

var jobTitles = map[string][]string{
	"Engineering": {"Engineer", "Senior Engineer", "Tech Lead"},
	"Sales":       {"Account Exec", "Sales Manager"},
	"HR":          {"Recruiter", "HR Generalist"},
	"Marketing":   {"Marketing Analyst", "Content Lead"},
	"Finance":     {"Accountant", "Financial Analyst"},
	"Operations":  {"Operations Analyst", "Logistics Lead"},
}

var names = []string{
	"Alice", "Bob", "Cara", "Drew", "Elif", "Farid", "Grace", "Hana",
	"Ivan", "Jordan", "Kofi", "Lena", "Marco", "Nadia", "Omar", "Priya",
	"Quinn", "Rosa", "Sam", "Tariq",
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

func randomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

func pick(options []string) string {
	return options[randomInt(len(options))]
}

// profile is one generated employee row before CSV encoding.
type profile struct {
	performance  float64
	satisfaction float64
	training     float64
	overtime     float64
	projects     int
	sickDays     int
	promotions   int
}

// generateProfile draws metrics for one tier.
func generateProfile() profile {
	switch randomInt(tierDivisor) {
	case caseElitePerformer:
		return profile{
			performance:  4.5 + getRandomFloat()*0.5,
			satisfaction: 8 + getRandomFloat()*2,
			training:     40 + getRandomFloat()*20,
			overtime:     getRandomFloat() * 5,
			projects:     6 + randomInt(4),
			sickDays:     randomInt(2),
			promotions:   1 + randomInt(3),
		}
	case caseHighPerformer:
		return profile{
			performance:  4.0 + getRandomFloat()*0.5,
			satisfaction: 6 + getRandomFloat()*3,
			training:     30 + getRandomFloat()*20,
			overtime:     getRandomFloat() * 8,
			projects:     4 + randomInt(4),
			sickDays:     randomInt(4),
			promotions:   randomInt(2),
		}
	case caseLowPerformer:
		return profile{
			performance:  1.5 + getRandomFloat(),
			satisfaction: 2 + getRandomFloat()*4,
			training:     getRandomFloat() * 15,
			overtime:     5 + getRandomFloat()*20,
			projects:     1 + randomInt(3),
			sickDays:     3 + randomInt(8),
			promotions:   0,
		}
	case caseStrugglingHire:
		return profile{
			performance:  1 + getRandomFloat()*1.5,
			satisfaction: 1 + getRandomFloat()*3,
			training:     getRandomFloat() * 10,
			overtime:     15 + getRandomFloat()*25,
			projects:     1 + randomInt(2),
			sickDays:     5 + randomInt(10),
			promotions:   0,
		}
	default:
		return profile{
			performance:  2.5 + getRandomFloat()*1.5,
			satisfaction: 4 + getRandomFloat()*4,
			training:     10 + getRandomFloat()*30,
			overtime:     getRandomFloat() * 12,
			projects:     2 + randomInt(5),
			sickDays:     randomInt(6),
			promotions:   randomInt(2),
		}
	}
}

func main() {
	var (
		rows   = flag.Int("rows", defaultRows, "Number of employee rows to generate")
		output = flag.String("output", "employee_data.csv", "Output CSV path")
	)
	flag.Parse()

	f, err := os.Create(*output)
	if err != nil {
		os.Stderr.WriteString("failed to create output: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"Employee_ID", "Name", "Department", "Job_Title", "Hire_Date",
		"Performance_Score", "Monthly_Salary", "Work_Hours_Per_Week",
		"Projects_Handled", "Overtime_Hours", "Sick_Days", "Team_Size",
		"Training_Hours", "Promotions", "Employee_Satisfaction_Score",
	}
	if err := w.Write(header); err != nil {
		os.Stderr.WriteString("failed to write header: " + err.Error() + "\n")
		os.Exit(1)
	}

	now := time.Now()
	for i := 0; i < *rows; i++ {
		p := generateProfile()
		dept := pick(departments)
		hireDate := now.AddDate(0, 0, -randomInt(maxTenureDays)).Format("2006-01-02")

		record := []string{
			strconv.Itoa(startingEmployeeID + i),
			pick(names),
			dept,
			pick(jobTitles[dept]),
			hireDate,
			fmt.Sprintf("%.1f", p.performance),
			fmt.Sprintf("%.0f", 3000+getRandomFloat()*5000),
			fmt.Sprintf("%.0f", 35+getRandomFloat()*15),
			strconv.Itoa(p.projects),
			fmt.Sprintf("%.1f", p.overtime),
			strconv.Itoa(p.sickDays),
			strconv.Itoa(2 + randomInt(10)),
			fmt.Sprintf("%.1f", p.training),
			strconv.Itoa(p.promotions),
			fmt.Sprintf("%.1f", p.satisfaction),
		}
		if err := w.Write(record); err != nil {
			os.Stderr.WriteString("failed to write row: " + err.Error() + "\n")
			os.Exit(1)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		os.Stderr.WriteString("failed to flush output: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("wrote %d rows to %s\n", *rows, *output)
}
