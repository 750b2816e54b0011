package services

import (
	"SalesDashboard/app/forms"
	"SalesDashboard/app/models"
	"SalesDashboard/app/store"

	"go.uber.org/zap"
)

// EmployeeService handles employee records
type EmployeeService struct {
	notifier
	employees *store.Collection[models.Employee]
	log       *zap.Logger
}

// NewEmployeeService creates a new employee service over the given collection
func NewEmployeeService(employees *store.Collection[models.Employee], out Notifier, log *zap.Logger) *EmployeeService {
	return &EmployeeService{
		notifier:  notifier{entity: "employee", out: out},
		employees: employees,
		log:       log.Named("employees"),
	}
}

// NewEmployeeForm returns an empty create form
func (s *EmployeeService) NewEmployeeForm() *forms.Form[models.EmployeeInput] {
	return forms.New(models.EmployeeFields, models.EmployeeFromForm, "Add Employee")
}

// EditEmployeeForm returns a form seeded with the employee's current values
func (s *EmployeeService) EditEmployeeForm(id int) (*forms.Form[models.EmployeeInput], error) {
	employee, err := s.GetEmployee(id)
	if err != nil {
		return nil, err
	}
	form := forms.New(models.EmployeeFields, models.EmployeeFromForm, "Update Employee")
	return form.Seed(employee.FormData()), nil
}

// GetEmployees gets the employees matching term by name, email or phone
func (s *EmployeeService) GetEmployees(term string) store.View[models.Employee] {
	return s.employees.View(term)
}

// GetEmployee gets an employee by ID
func (s *EmployeeService) GetEmployee(id int) (models.Employee, error) {
	employee, ok := s.employees.Get(id)
	if !ok {
		return models.Employee{}, notFound("Employee", id)
	}
	return employee, nil
}

// CreateEmployee validates a submitted form and adds the employee at the top of the list
func (s *EmployeeService) CreateEmployee(values forms.Values) (models.Employee, Outcome, error) {
	form := s.NewEmployeeForm()
	form.SetAll(values)

	var created models.Employee
	err := form.Submit(func(in models.EmployeeInput) error {
		created = s.employees.Add(func(id int) models.Employee {
			return models.NewEmployee(id, in)
		})
		return nil
	})
	if err != nil {
		return models.Employee{}, Outcome{}, s.fail(0, err)
	}

	s.log.Info("Employee created", zap.Int("id", created.ID), zap.String("name", created.Name))
	return created, s.succeed(ActionCreated, created.ID, "Employee added successfully"), nil
}

// UpdateEmployee replaces the editable fields of an employee. Totals, status
// and join date are kept.
func (s *EmployeeService) UpdateEmployee(id int, values forms.Values) (models.Employee, Outcome, error) {
	form, err := s.EditEmployeeForm(id)
	if err != nil {
		return models.Employee{}, Outcome{}, s.fail(id, err)
	}
	form.SetAll(values)

	var updated models.Employee
	err = form.Submit(func(in models.EmployeeInput) error {
		var err error
		updated, err = s.employees.Update(id, func(e *models.Employee) error {
			in.ApplyTo(e)
			return nil
		})
		if err == store.ErrNotFound {
			return notFound("Employee", id)
		}
		return err
	})
	if err != nil {
		return models.Employee{}, Outcome{}, s.fail(id, err)
	}

	s.log.Info("Employee updated", zap.Int("id", id))
	return updated, s.succeed(ActionUpdated, id, "Employee updated successfully"), nil
}

// DeleteEmployee removes an employee. Sales keep the denormalised name.
func (s *EmployeeService) DeleteEmployee(id int) (models.Employee, Outcome, error) {
	removed, err := s.employees.Remove(id)
	if err != nil {
		return models.Employee{}, Outcome{}, s.fail(id, notFound("Employee", id))
	}

	s.log.Info("Employee deleted", zap.Int("id", id))
	return removed, s.succeed(ActionDeleted, id, removed.Name+" deleted successfully"), nil
}
