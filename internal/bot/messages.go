package bot

const (
	msgError = "❌ Сталася помилка при отриманні даних"
)
