package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ceramicalma/ALMA-BookingService/internal/domain"
	instructorRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/instructor"
	productRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/product"
)

// Service сервис каталога продуктов и инструкторов
type Service struct {
	productRepo    ProductRepository
	instructorRepo InstructorRepository
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса продуктов
func NewService(
	productRepo ProductRepository,
	instructorRepo InstructorRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		productRepo:    productRepo,
		instructorRepo: instructorRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// List получает каталог продуктов
func (s *Service) List(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return products, nil
}

// GetByID получает продукт по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, productRepo.ErrProductNotFound) {
			s.logger.Warn("GetByID: product id=%d not found", id)
			return nil, ErrProductNotFound
		}
		s.logger.Error("GetByID: repository error for product id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return product, nil
}

// Instructors получает список инструкторов
func (s *Service) Instructors(ctx context.Context) ([]*domain.Instructor, error) {
	instructors, err := s.instructorRepo.List(ctx)
	if err != nil {
		s.logger.Error("Instructors: repository error: %v", err)
		return nil, fmt.Errorf("%w: Instructors - repository error: %v", ErrInternal, err)
	}
	return instructors, nil
}

// ReplaceCatalog заменяет каталог продуктов и список инструкторов целиком.
// Редактор витрины сохраняет все одним запросом; обе таблицы меняются
// в одной транзакции.
func (s *Service) ReplaceCatalog(ctx context.Context, products []*domain.Product, instructors []domain.Instructor) error {
	s.logger.Info("ReplaceCatalog: %d products, %d instructors", len(products), len(instructors))

	for _, p := range products {
		if err := validateProduct(p); err != nil {
			s.logger.Warn("ReplaceCatalog: product id=%d invalid: %v", p.ID, err)
			return err
		}
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.productRepo.ReplaceAll(txCtx, products); err != nil {
			return fmt.Errorf("%w: ReplaceCatalog - replace products: %v", ErrInternal, err)
		}
		if err := s.instructorRepo.ReplaceAll(txCtx, instructors); err != nil {
			return fmt.Errorf("%w: ReplaceCatalog - replace instructors: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("ReplaceCatalog: %v", err)
		return err
	}

	return nil
}

// UpdateSchedulingRules заменяет правила расписания вводного класса
func (s *Service) UpdateSchedulingRules(ctx context.Context, id int64, rules []domain.SchedulingRule) error {
	s.logger.Info("UpdateSchedulingRules: product id=%d, %d rules", id, len(rules))

	for _, rule := range rules {
		if err := validateRule(rule); err != nil {
			s.logger.Warn("UpdateSchedulingRules: rule %q invalid: %v", rule.ID, err)
			return err
		}
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.IsIntroductoryClass() {
		return ErrNotIntroductoryClass
	}

	if err := s.productRepo.UpdateSchedulingRules(ctx, id, rules); err != nil {
		s.logger.Error("UpdateSchedulingRules: repository error for product id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateSchedulingRules - repository error: %v", ErrInternal, err)
	}

	return nil
}

// UpdateOverrides заменяет переопределения расписания вводного класса.
// Переопределение, совпадающее по набору сессий с тем, что шаблон и так
// сгенерировал бы на эту дату, избыточно и отбрасывается перед сохранением.
func (s *Service) UpdateOverrides(ctx context.Context, id int64, overrides []domain.SessionOverride) error {
	s.logger.Info("UpdateOverrides: product id=%d, %d overrides", id, len(overrides))

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !product.IsIntroductoryClass() {
		return ErrNotIntroductoryClass
	}

	kept := make([]domain.SessionOverride, 0, len(overrides))
	for _, override := range overrides {
		date, err := time.Parse(domain.DateFormat, override.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid override date %q", ErrInvalidInput, override.Date)
		}
		if !override.IsCancellation() {
			generated := domain.GenerateSessions(product.SchedulingRules, nil, date, 1)
			if domain.OverrideMatchesGenerated(generated, override.Sessions) {
				s.logger.Info("UpdateOverrides: dropping redundant override for %s", override.Date)
				continue
			}
		}
		kept = append(kept, override)
	}

	if err := s.productRepo.UpdateOverrides(ctx, id, kept); err != nil {
		s.logger.Error("UpdateOverrides: repository error for product id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateOverrides - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ReassignAndDeleteInstructor переводит все сессии инструктора на замену
// и удаляет его. Перенос затрагивает правила и переопределения всех вводных
// классов и выполняется в одной транзакции с удалением.
func (s *Service) ReassignAndDeleteInstructor(ctx context.Context, instructorID, replacementID int64) error {
	s.logger.Info("ReassignAndDeleteInstructor: instructor id=%d -> replacement id=%d", instructorID, replacementID)

	if instructorID == replacementID {
		return fmt.Errorf("%w: replacement must differ from the deleted instructor", ErrInvalidInput)
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		products, err := s.productRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: ReassignAndDeleteInstructor - list products: %v", ErrInternal, err)
		}

		for _, product := range products {
			if !product.IsIntroductoryClass() {
				continue
			}

			rulesChanged := false
			for i := range product.SchedulingRules {
				if product.SchedulingRules[i].InstructorID == instructorID {
					product.SchedulingRules[i].InstructorID = replacementID
					rulesChanged = true
				}
			}
			if rulesChanged {
				if err := s.productRepo.UpdateSchedulingRules(txCtx, product.ID, product.SchedulingRules); err != nil {
					return fmt.Errorf("%w: ReassignAndDeleteInstructor - update rules for product %d: %v", ErrInternal, product.ID, err)
				}
			}

			overridesChanged := false
			for i := range product.Overrides {
				for j := range product.Overrides[i].Sessions {
					if product.Overrides[i].Sessions[j].InstructorID == instructorID {
						product.Overrides[i].Sessions[j].InstructorID = replacementID
						overridesChanged = true
					}
				}
			}
			if overridesChanged {
				if err := s.productRepo.UpdateOverrides(txCtx, product.ID, product.Overrides); err != nil {
					return fmt.Errorf("%w: ReassignAndDeleteInstructor - update overrides for product %d: %v", ErrInternal, product.ID, err)
				}
			}
		}

		if err := s.instructorRepo.Delete(txCtx, instructorID); err != nil {
			if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
				return ErrInstructorNotFound
			}
			return fmt.Errorf("%w: ReassignAndDeleteInstructor - delete instructor: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("ReassignAndDeleteInstructor: %v", err)
		return err
	}

	return nil
}

// validateProduct проверяет запись каталога перед сохранением
func validateProduct(p *domain.Product) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: product id must be positive", ErrInvalidInput)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Price != nil && *p.Price < 0 {
		return fmt.Errorf("%w: product price must not be negative", ErrInvalidInput)
	}
	for _, rule := range p.SchedulingRules {
		if err := validateRule(rule); err != nil {
			return err
		}
	}
	return nil
}

// validateRule проверяет правило расписания
func validateRule(rule domain.SchedulingRule) error {
	if rule.DayOfWeek < 0 || rule.DayOfWeek > 6 {
		return fmt.Errorf("%w: dayOfWeek must be 0..6", ErrInvalidInput)
	}
	if err := rule.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid rule time: %v", ErrInvalidInput, err)
	}
	if rule.Capacity < domain.MinSessionCapacity || rule.Capacity > domain.MaxSessionCapacity {
		return fmt.Errorf("%w: capacity must be %d..%d", ErrInvalidInput, domain.MinSessionCapacity, domain.MaxSessionCapacity)
	}
	return nil
}
