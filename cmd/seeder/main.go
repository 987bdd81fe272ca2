package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/vuongnm/staffdesk/internal/config"
	"github.com/vuongnm/staffdesk/internal/database"
	"github.com/vuongnm/staffdesk/internal/domain"
	"github.com/vuongnm/staffdesk/internal/logger"
	"github.com/vuongnm/staffdesk/internal/repository"
	"github.com/vuongnm/staffdesk/internal/service"
)

// fixture mirrors one YAML entry in the seed file.
type fixture struct {
	FirstName    string   `yaml:"firstName"`
	LastName     string   `yaml:"lastName"`
	Email        string   `yaml:"email"`
	EmployeeType string   `yaml:"employeeType"`
	Phone        string   `yaml:"phone"`
	Position     string   `yaml:"position"`
	Department   string   `yaml:"department"`
	JoiningDate  string   `yaml:"joiningDate"`
	Salary       *float64 `yaml:"salary"`
	Status       string   `yaml:"status"`
}

func main() {
	action := flag.String("action", "seed", "Action to perform: seed, clear")
	file := flag.String("file", "seed_employees.yaml", "YAML fixture file to load")
	flag.Parse()

	ctx := context.Background()

	if err := config.LoadEnvConfig(); err != nil {
		log.Fatal(err)
	}
	cfg := config.DefaultEnvConfig
	logger.InitLogging(cfg.LOG_FILE_PATH)

	es, err := database.NewElasticSearchClient(ctx, cfg.ES_URL, cfg.ES_INDEX, cfg.ES_EMAIL_INDEX)
	if err != nil {
		logger.ErrorLog(ctx, "Failed to connect to Elasticsearch: %v", err)
		log.Fatal(err)
	}

	switch *action {
	case "seed":
		if err := seed(ctx, es, cfg.ES_REQUEST_SIZE, *file); err != nil {
			log.Fatal(err)
		}
	case "clear":
		if err := es.Reset(ctx); err != nil {
			logger.ErrorLog(ctx, "Failed to clear indices: %v", err)
			log.Fatal(err)
		}
		fmt.Println("Indices cleared")
	default:
		log.Fatalf("unknown action %q (want seed or clear)", *action)
	}
}

func seed(ctx context.Context, es *database.ElasticSearchClient, size int, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fixtures []fixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("failed to parse fixture file: %w", err)
	}

	repo := repository.NewEmployeeRepository(es, size)
	svc := service.NewEmployeeService(repo)

	created, skipped := 0, 0
	for _, f := range fixtures {
		in := domain.CreateEmployeeInput{
			FirstName:    f.FirstName,
			LastName:     f.LastName,
			Email:        f.Email,
			EmployeeType: f.EmployeeType,
			Phone:        f.Phone,
			Position:     f.Position,
			Department:   f.Department,
			JoiningDate:  f.JoiningDate,
			Salary:       f.Salary,
			Status:       f.Status,
		}
		if _, err := svc.Create(ctx, in); err != nil {
			if domain.KindOf(err) == domain.KindDuplicate {
				skipped++
				continue
			}
			return fmt.Errorf("failed to seed %s: %w", f.Email, err)
		}
		created++
	}

	fmt.Printf("Seeded %d employees (%d already present)\n", created, skipped)
	return nil
}
