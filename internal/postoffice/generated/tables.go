package generated

// Статические справочники: первые три цифры индекса → город и телефонный код.
// Заполняются один раз при старте процесса, в рантайме не меняются.

var cityByPrefix = map[string]string{
	"101": "Москва", "102": "Москва", "103": "Москва", "105": "Москва",
	"107": "Москва", "109": "Москва", "117": "Москва", "119": "Москва",
	"121": "Москва", "123": "Москва", "125": "Москва", "127": "Москва",
	"190": "Санкт-Петербург", "191": "Санкт-Петербург", "193": "Санкт-Петербург",
	"194": "Санкт-Петербург", "195": "Санкт-Петербург", "196": "Санкт-Петербург",
	"197": "Санкт-Петербург", "198": "Санкт-Петербург", "199": "Санкт-Петербург",
	"420": "Казань", "423": "Набережные Челны",
	"620": "Екатеринбург", "623": "Нижний Тагил",
	"630": "Новосибирск",
	"690": "Владивосток", "692": "Находка",
	"344": "Ростов-на-Дону", "346": "Таганрог",
	"443": "Самара", "445": "Тольятти",
	"350": "Краснодар", "352": "Армавир", "354": "Сочи",
	"400": "Волгоград", "404": "Волжский",
	"454": "Челябинск", "456": "Магнитогорск",
	"614": "Пермь",
	"660": "Красноярск",
	"680": "Хабаровск",
	"672": "Чита",
	"664": "Иркутск",
	"603": "Нижний Новгород",
	"432": "Ульяновск",
	"394": "Воронеж",
	"305": "Курск",
	"214": "Смоленск",
	"170": "Тверь",
	"150": "Ярославль",
	"160": "Вологда",
	"184": "Мурманск",
	"163": "Архангельск",
	"183": "Петрозаводск",
	"185": "Северодвинск",
}

var phoneCodeByPrefix = map[string]string{
	// Москва и МО
	"101": "495", "102": "495", "103": "495", "105": "495", "107": "495",
	"109": "495", "117": "495", "119": "495", "121": "495", "123": "495",
	"125": "495", "127": "495",
	// Санкт-Петербург и ЛО
	"190": "812", "191": "812", "193": "812", "194": "812", "195": "812",
	"196": "812", "197": "812", "198": "812", "199": "812",
	// Татарстан
	"420": "843", "423": "8552",
	// Свердловская область
	"620": "343", "623": "3435",
	// Новосибирская область
	"630": "383",
	// Приморский край
	"690": "423", "692": "4236",
	// Ростовская область
	"344": "863", "346": "8634",
	// Самарская область
	"443": "846", "445": "8482",
	// Краснодарский край
	"350": "861", "352": "86137", "354": "862",
	// Волгоградская область
	"400": "844", "404": "8443",
	// Челябинская область
	"454": "351", "456": "3519",
	// Пермский край
	"614": "342",
	// Красноярский край
	"660": "391",
	// Хабаровский край
	"680": "4212",
	// Забайкальский край
	"672": "3022",
	// Иркутская область
	"664": "3952",
	// Нижегородская область
	"603": "831",
	// Ульяновская область
	"432": "8422",
	// Воронежская область
	"394": "473",
	// Курская область
	"305": "4712",
	// Смоленская область
	"214": "4812",
	// Тверская область
	"170": "4822",
	// Ярославская область
	"150": "4852",
	// Вологодская область
	"160": "8172",
	// Мурманская область
	"184": "8152",
	// Архангельская область
	"163": "8182", "185": "8184",
	// Карелия
	"183": "8142",
}

// Код для регионов, которых нет в справочнике.
const fallbackPhoneCode = "800"
