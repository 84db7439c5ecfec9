package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"twin-dojo/internal/config"
	"twin-dojo/internal/domain"
	"twin-dojo/internal/llm"
	"twin-dojo/internal/repository"
	"twin-dojo/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	var chatClient llm.ChatClient
	if cfg.RemoteConfigured() {
		chatClient, err = llm.NewChatClient(cfg.LLMProvider, cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			log.Fatal(err)
		}
	}

	employeeSvc := service.NewEmployeeService(repository.NewMemoryEmployeeRepository(), logger)
	engine := service.NewPersonaEngine(chatClient, nil, cfg.LLMTemperature, logger)
	conversationSvc := service.NewConversationService(
		repository.NewMemoryConversationRepository(),
		employeeSvc,
		engine,
		service.NewLocalGenerationGuard(cfg.GenerationLockTTL),
		logger,
	)

	if engine.RemoteEnabled() {
		fmt.Printf("Modo remoto: %s (%s)\n", cfg.LLMProvider, cfg.LLMModel)
	} else {
		fmt.Println("Modo local: respuestas heurísticas (sin LLM_API_KEY)")
	}

	for {
		fmt.Println("===== Dojo =====")
		employees, err := employeeSvc.List(ctx)
		if err != nil {
			log.Fatalf("listar personas: %v", err)
		}
		if len(employees) == 0 {
			fmt.Println("No hay personas. Crea una nueva.")
			created, err := createEmployeeFlow(ctx, reader, employeeSvc, logger)
			if err != nil {
				log.Fatalf("crear persona: %v", err)
			}
			employees = append(employees, created)
		}

		fmt.Println("Personas disponibles:")
		for i, e := range employees {
			t := e.Traits
			fmt.Printf("[%d] %s, %s (O%d C%d E%d A%d N%d)\n", i+1, e.Name, e.Role,
				t.Openness, t.Conscientiousness, t.Extraversion, t.Agreeableness, t.Neuroticism)
		}
		fmt.Println("[C] Crear nueva persona")
		fmt.Println("[Q] Salir")
		fmt.Print("Selecciona: ")
		choice, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		choice = strings.TrimSpace(choice)

		var selected domain.Employee
		switch {
		case strings.EqualFold(choice, "Q"):
			return
		case strings.EqualFold(choice, "C"):
			selected, err = createEmployeeFlow(ctx, reader, employeeSvc, logger)
			if err != nil {
				fmt.Printf("error creando persona: %v\n", err)
				continue
			}
		default:
			idx, err := strconv.Atoi(choice)
			if err != nil || idx < 1 || idx > len(employees) {
				fmt.Println("Seleccion invalida.")
				continue
			}
			selected = employees[idx-1]
		}

		st, ok := chooseSessionType(reader)
		if !ok {
			continue
		}
		if err := chatFlow(ctx, reader, selected, st, conversationSvc); err != nil {
			log.Printf("error en chat: %v", err)
		}
	}
}

func createEmployeeFlow(ctx context.Context, reader *bufio.Reader, svc *service.EmployeeService, logger *zap.Logger) (domain.Employee, error) {
	name := readLine(reader, "Nombre: ")
	role := readLine(reader, "Cargo: ")
	gender := domain.GenderFemale
	if strings.EqualFold(readLine(reader, "Género [F/M] (F): "), "M") {
		gender = domain.GenderMale
	}

	var traits *domain.TraitProfile
	if strings.EqualFold(readLine(reader, "¿Responder el test de personalidad? [S/N] (N): "), "S") {
		profile, err := runPersonalityTest(reader, logger)
		if err != nil {
			fmt.Printf("test incompleto (%v), se usan rasgos neutros\n", err)
		} else {
			traits = &profile
		}
	}

	return svc.Create(ctx, service.CreateEmployeeInput{Name: name, Role: role, Gender: gender, Traits: traits})
}

func runPersonalityTest(reader *bufio.Reader, logger *zap.Logger) (domain.TraitProfile, error) {
	questions := service.Questionnaire()
	assessment := service.NewAssessment(logger)

	fmt.Printf("\n--- TEST DE PERSONALIDAD OCEAN (%d Preguntas) ---\n", len(questions))
	fmt.Println("Responde de 1 (discordo totalmente) a 5 (concordo totalmente). Enter = 3.")

	for i, q := range questions {
		v := readIntDefault(reader, fmt.Sprintf("\n[%d/%d] %s: ", i+1, len(questions), q.Text), domain.LikertNeutral)
		if err := assessment.Answer(q.ID, v); err != nil {
			fmt.Println("Valor fuera de rango, se usa 3.")
			_ = assessment.Answer(q.ID, domain.LikertNeutral)
		}
		fmt.Printf("Progreso: %d%%\n", assessment.Progress())
	}
	return assessment.Score()
}

func chooseSessionType(reader *bufio.Reader) (domain.SessionType, bool) {
	framings := service.AllFramings()
	fmt.Println("Tipo de sesión:")
	for i, f := range framings {
		fmt.Printf("[%d] %s: %s\n", i+1, f.Title, f.Description)
	}
	idx := readIntDefault(reader, "Selecciona: ", 0)
	if idx < 1 || idx > len(framings) {
		fmt.Println("Seleccion invalida.")
		return 0, false
	}
	return framings[idx-1].SessionType, true
}

func chatFlow(ctx context.Context, reader *bufio.Reader, employee domain.Employee, st domain.SessionType, svc *service.ConversationService) error {
	conv, err := svc.Start(ctx, employee.ID, st)
	if err != nil {
		return fmt.Errorf("iniciar conversación: %w", err)
	}

	fmt.Println("---- Modo Chat (escribe 'salir' para terminar) ----")
	fmt.Printf("%s > %s\n", employee.Name, conv.Turns[0].Text)
	for {
		fmt.Print("Tu > ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "salir") || strings.EqualFold(text, "exit") {
			break
		}

		res, err := svc.Send(ctx, conv.ID, text)
		if err != nil {
			fmt.Printf("error generando respuesta: %v\n", err)
			continue
		}
		fmt.Printf("%s > %s\n", employee.Name, res.PersonaTurn.Text)
	}

	score := readIntDefault(reader, "Autoevaluación 0-100 (50): ", 50)
	summary := readLine(reader, "Resumen: ")
	if _, err := svc.End(ctx, conv.ID, score, summary); err != nil {
		return fmt.Errorf("cerrar conversación: %w", err)
	}
	fmt.Println("Sesión guardada en el historial.")
	return nil
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func readIntDefault(reader *bufio.Reader, prompt string, def int) int {
	line := readLine(reader, prompt)
	if line == "" {
		return def
	}
	if v, err := strconv.Atoi(line); err == nil {
		return v
	}
	return def
}
