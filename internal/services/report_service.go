package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "walleto/internal/errors"
	"walleto/internal/models"
	"walleto/internal/pagination"
	"walleto/internal/period"
	"walleto/internal/treepath"
)

// reportService joins operations against category paths and aggregates
// them. It only reads from both stores.
type reportService struct {
	db              *gorm.DB
	categoryService CategoryServicer
	now             func() time.Time
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, categoryService CategoryServicer) ReportServicer {
	return &reportService{
		db:              db,
		categoryService: categoryService,
		now:             time.Now,
	}
}

// reportRow is the scan target for the report query. The window aggregates
// repeat the totals of the whole filtered set on every row, so pagination
// does not distort them.
type reportRow struct {
	ID            uint
	Type          models.OperationType
	Amount        int64
	Description   *string
	OperationDate time.Time
	TreePath      *string
	TotalAmount   int64
	TotalItems    int64
}

// GetReport produces the filtered, paginated, aggregated operation view.
func (s *reportService) GetReport(userID uint, filter ReportFilter) (*Report, error) {
	from, to, err := s.resolveBounds(filter)
	if err != nil {
		return nil, err
	}

	page := filter.Page
	page.Defaults()

	q := s.db.Model(&models.Operation{}).
		Select(`operations.id, operations.type, operations.amount, operations.description,
			operations.operation_date, categories.tree_path AS tree_path,
			SUM(operations.amount) OVER () AS total_amount,
			COUNT(*) OVER () AS total_items`).
		Joins("LEFT JOIN categories ON categories.id = operations.category_id").
		Where("operations.user_id = ?", userID)

	if filter.CategoryID != nil {
		// Subtree-inclusive: the padded node token appears in the path of
		// the category itself and of every descendant.
		token := treepath.Encode(*filter.CategoryID)
		q = q.Where("categories.tree_path LIKE ?", "%"+token+"%")
	}
	if from != nil {
		q = q.Where("operations.operation_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("operations.operation_date < ?", *to)
	}

	var rows []reportRow
	if err := q.Scopes(pagination.Paginate(page)).
		Order("operations.operation_date DESC, operations.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	report := &Report{Operations: []ReportOperation{}}
	if len(rows) == 0 {
		return report, nil
	}

	report.TotalAmount = rows[0].TotalAmount
	report.TotalItems = rows[0].TotalItems
	report.TotalPages = page.TotalPages(report.TotalItems)

	byID, err := s.userCategoriesByID(userID)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		op := ReportOperation{
			ID:            row.ID,
			Type:          row.Type,
			Amount:        row.Amount,
			Description:   row.Description,
			OperationDate: row.OperationDate,
			Categories:    []CategoryRef{},
		}
		if row.TreePath != nil {
			// The split preserves path order, so the chain runs root → own.
			for _, id := range treepath.Split(*row.TreePath) {
				if cat, ok := byID[id]; ok {
					op.Categories = append(op.Categories, CategoryRef{ID: cat.ID, Title: cat.Title})
				}
			}
		}
		report.Operations = append(report.Operations, op)
	}

	return report, nil
}

// resolveBounds computes the effective [from, to) window: named-period
// bounds first, then explicit from/to override the derived value per field.
func (s *reportService) resolveBounds(filter ReportFilter) (from, to *time.Time, err error) {
	if filter.Period != "" {
		from, to, err = period.Resolve(filter.Period, s.now())
		if err != nil {
			return nil, nil, apperrors.WithMessage(apperrors.ErrInvalidPeriod, err.Error())
		}
	}

	if filter.From != "" {
		parsed, err := parseOperationDate(filter.From)
		if err != nil {
			return nil, nil, err
		}
		from = &parsed
	}
	if filter.To != "" {
		parsed, err := parseOperationDate(filter.To)
		if err != nil {
			return nil, nil, err
		}
		to = &parsed
	}
	return from, to, nil
}

// userCategoriesByID loads the user's full category set keyed by id.
func (s *reportService) userCategoriesByID(userID uint) (map[uint]models.Category, error) {
	categories, err := s.categoryService.GetUserCategories(userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}
	return byID, nil
}
