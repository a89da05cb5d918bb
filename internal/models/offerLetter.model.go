package models

import "strings"

const (
	FieldEmployeeName  = "employeeName"
	FieldPositionTitle = "positionTitle"
	FieldDepartment    = "department"
	FieldCompanyName   = "companyName"
	FieldJoiningDate   = "joiningDate"
	FieldSalary        = "salary"
)

// OfferLetterFieldNames is the canonical field order for the letter form.
var OfferLetterFieldNames = []string{
	FieldEmployeeName,
	FieldPositionTitle,
	FieldDepartment,
	FieldCompanyName,
	FieldJoiningDate,
	FieldSalary,
}

type OfferLetterFields struct {
	EmployeeName  string `json:"employeeName"  form:"employeeName"`
	PositionTitle string `json:"positionTitle" form:"positionTitle"`
	Department    string `json:"department"    form:"department"`
	CompanyName   string `json:"companyName"   form:"companyName"`
	JoiningDate   string `json:"joiningDate"   form:"joiningDate"`
	Salary        string `json:"salary"        form:"salary"`
}

func (f OfferLetterFields) Get(name string) (string, bool) {
	switch name {
	case FieldEmployeeName:
		return f.EmployeeName, true
	case FieldPositionTitle:
		return f.PositionTitle, true
	case FieldDepartment:
		return f.Department, true
	case FieldCompanyName:
		return f.CompanyName, true
	case FieldJoiningDate:
		return f.JoiningDate, true
	case FieldSalary:
		return f.Salary, true
	}
	return "", false
}

func (f OfferLetterFields) Values() map[string]string {
	values := make(map[string]string, len(OfferLetterFieldNames))
	for _, name := range OfferLetterFieldNames {
		values[name], _ = f.Get(name)
	}
	return values
}

func OfferLetterFieldsFromValues(values map[string]string) OfferLetterFields {
	return OfferLetterFields{
		EmployeeName:  values[FieldEmployeeName],
		PositionTitle: values[FieldPositionTitle],
		Department:    values[FieldDepartment],
		CompanyName:   values[FieldCompanyName],
		JoiningDate:   values[FieldJoiningDate],
		Salary:        values[FieldSalary],
	}
}

func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
