package finance

import "github.com/BruksfildServices01/barber-backoffice/internal/models"

const DefaultExpenseCategory = "outros"

var expenseCategories = []string{"luz", "agua", "internet", "aluguel", "material", "equipamento", "outros"}

func ExpenseCategories() []string {
	out := make([]string, len(expenseCategories))
	copy(out, expenseCategories)
	return out
}

func IsExpenseCategory(c string) bool {
	for _, v := range expenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

func IsExpenseStatus(s string) bool {
	return s == models.ExpenseStatusPending || s == models.ExpenseStatusPaid
}
