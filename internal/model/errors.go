package model

import "errors"

// ErrEmptyServiceType возвращается, если тип сервиса не указан.
var (
	ErrEmptyServiceType = errors.New("service type must not be empty")
	// ErrMissingDate возвращается, если дата обслуживания не задана.
	ErrMissingDate = errors.New("maintenance date is required")
	// ErrInvalidDate возвращается, если дата не разбирается как YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid maintenance date, expected YYYY-MM-DD")
	// ErrDoneFutureDate возвращается, если выполненное обслуживание датировано будущим.
	ErrDoneFutureDate = errors.New("completed maintenance cannot have a future date")
	// ErrDoneInvalidCost возвращается, если у выполненного обслуживания нет неотрицательной стоимости.
	ErrDoneInvalidCost = errors.New("completed maintenance requires a non-negative cost")
	// ErrInvalidStatus возвращается при неизвестном статусе обслуживания.
	ErrInvalidStatus = errors.New("unknown maintenance status")
	// ErrEmptyModel возвращается, если модель транспортного средства не указана.
	ErrEmptyModel = errors.New("vehicle model must not be empty")
	// ErrEmptyColor возвращается, если цвет транспортного средства не указан.
	ErrEmptyColor = errors.New("vehicle color must not be empty")
	// ErrInvalidCapacity возвращается при неположительной грузоподъёмности.
	ErrInvalidCapacity = errors.New("cargo capacity must be a positive number")
	// ErrInvalidAmount возвращается при неположительном количестве груза или отрицательном изменении скорости.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrUnknownKind возвращается при неизвестном типе транспортного средства.
	ErrUnknownKind = errors.New("unknown vehicle kind")
)

// ErrAlreadyRunning возвращается при попытке завести уже заведённое транспортное средство.
var (
	ErrAlreadyRunning = errors.New("vehicle is already running")
	// ErrAlreadyStopped возвращается при попытке заглушить уже заглушённое транспортное средство.
	ErrAlreadyStopped = errors.New("vehicle is already off")
	// ErrStopBeforeOff требует полной остановки перед выключением двигателя.
	ErrStopBeforeOff = errors.New("vehicle must stop before turning off")
	// ErrNotRunning возвращается, если операция требует заведённого двигателя.
	ErrNotRunning = errors.New("vehicle must be running")
	// ErrTurboAlreadyOn возвращается, если турбо уже включено.
	ErrTurboAlreadyOn = errors.New("turbo is already engaged")
	// ErrTurboAlreadyOff возвращается, если турбо уже выключено.
	ErrTurboAlreadyOff = errors.New("turbo is already disengaged")
	// ErrTurboUnsupported возвращается для транспортных средств без турбо.
	ErrTurboUnsupported = errors.New("vehicle has no turbo")
	// ErrCargoUnsupported возвращается для транспортных средств без грузового отсека.
	ErrCargoUnsupported = errors.New("vehicle cannot carry cargo")
	// ErrStopBeforeCargo требует заглушить двигатель перед погрузкой или разгрузкой.
	ErrStopBeforeCargo = errors.New("vehicle must be off before loading or unloading")
)

// ErrOverCapacity возвращается, если погрузка превысила бы грузоподъёмность.
var (
	ErrOverCapacity = errors.New("load exceeds cargo capacity")
	// ErrInsufficientLoad возвращается, если разгрузка превысила бы текущий груз.
	ErrInsufficientLoad = errors.New("not enough cargo to unload")
)

var validationErrors = []error{
	ErrEmptyServiceType,
	ErrMissingDate,
	ErrInvalidDate,
	ErrDoneFutureDate,
	ErrDoneInvalidCost,
	ErrInvalidStatus,
	ErrEmptyModel,
	ErrEmptyColor,
	ErrInvalidCapacity,
	ErrInvalidAmount,
	ErrUnknownKind,
}

var stateConflictErrors = []error{
	ErrAlreadyRunning,
	ErrAlreadyStopped,
	ErrStopBeforeOff,
	ErrNotRunning,
	ErrTurboAlreadyOn,
	ErrTurboAlreadyOff,
	ErrTurboUnsupported,
	ErrCargoUnsupported,
	ErrStopBeforeCargo,
}

var capacityErrors = []error{
	ErrOverCapacity,
	ErrInsufficientLoad,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidationError сообщает, относится ли ошибка к категории некорректного ввода.
func IsValidationError(err error) bool {
	return matchesAny(err, validationErrors)
}

// IsStateConflictError сообщает, относится ли ошибка к конфликту состояния.
func IsStateConflictError(err error) bool {
	return matchesAny(err, stateConflictErrors)
}

// IsCapacityError сообщает, относится ли ошибка к нарушению пределов груза.
func IsCapacityError(err error) bool {
	return matchesAny(err, capacityErrors)
}
