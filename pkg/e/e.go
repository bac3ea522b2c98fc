package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Внутренние ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest   = fmt.Errorf("bad_request")
	ErrCustomerIDRequired = fmt.Errorf("missing_customer_id")
	ErrItemsRequired      = fmt.Errorf("items_required")
	ErrUserIDRequired     = fmt.Errorf("missing_user_id")

	// 404 Not Found
	ErrProductNotFound = fmt.Errorf("product_not_found")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal_server_error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
