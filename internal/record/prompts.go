package record

// Extraction prompts for the two register formats. Tuned against 1960s West
// Bengal registration office scans; the geographical gazetteer up front is
// what lets the model correct OCR slips in place names.

const index1Prompt = `
GEOGRAPHICAL KNOWLEDGE FOR 1960s WEST BENGAL:

DISTRICTS AND SUBDIVISIONS:
- Hooghly: Chinsurah, Serampore, Chandernagore, Arambagh, Khanakul
- Burdwan: Ausgram, Kalna, Katwa, Dainhat, Memari, Jamalpur
- 24 Parganas: Barasat, Basirhat, Diamond Harbour, Alipore, Baruipur, Canning
- Nadia: Krishnanagar, Ranaghat, Kalyani, Tehatta, Chapra
- Murshidabad: Berhampore, Kandi, Lalbagh, Hariharpara, Nawda
- Birbhum: Suri, Bolpur, Rampurhat, Sainthia, Mayurbhanj
- Bankura: Bankura, Bishnupur, Khatra, Taldangra, Onda
- Purulia: Purulia, Raghunathpur, Jhalda, Para, Baghmundi
- Midnapore: Midnapore, Tamluk, Contai, Jhargram, Ghatal
- Jalpaiguri: Jalpaiguri, Siliguri, Kalimpong, Alipurduar
- Darjeeling: Darjeeling, Kurseong, Mirik
- Cooch Behar: Cooch Behar, Tufanganj, Mathabhanga, Mekhliganj
- West Dinajpur: Balurghat, Raiganj, Islampur, Kushmandi
- Malda: English Bazar, Chanchal, Ratua, Habibpur

COMMON POLICE STATIONS (PS):
Ausgram, Chinsurah, Serampore, Chandernagore, Berhampore, Krishnanagar, Ranaghat,
Suri, Bolpur, Bankura, Bishnupur, Midnapore, Tamluk, Jalpaiguri, Siliguri,
Balurghat, Raiganj, Arambagh, Kalna, Katwa, Memari, Barasat, Basirhat

COMMON RELIGIONS:
Hindu, Muslim, Christian, Buddhist, Sikh, Jain, Brahmo

COMMON OCCUPATIONS (1960s):
Cultivator, Trader, Weaver, Blacksmith, Carpenter, Teacher, Clerk, Zamindar,
Shopkeeper, Fisherman, Boatman, Goldsmith, Tailor, Barber, Washerman,
Potter, Milkman, Palanquin Bearer, Cooly, Service, Business, Retired

COMMON MISSPELLINGS:
- "Ausgram" often misread as "Ausgrama"
- "Katwa" as "Katra"

Use this knowledge to correct common OCR errors in place names, police stations,
religions, and occupations. Apply phonetic matching for Bengali names.

Extract data from this INDEX I document. Return ONLY JSON - no explanations, no reasoning.

COLUMN STRUCTURE FOR INDEX I:
1. "Name of person" → Primary person involved in the transaction
2. "Family details" → Relationship information of the person (look for S/o, D/o, W/o)
3. "Interest of person" → Legal interest or role in the transaction
4. "Where registered" → Name of the place where the registration occurred
5. "Serial number" → Sequential entry number
6. "Book 1 Volume" → Volume number (Roman or Arabic numerals)
7. "Book 2 Page" → Page number reference

ENHANCED FAMILY DETAILS PARSING:
From the "Family details" field, extract these components separately:
- Police Station (PS): Look for "PS [name]" pattern (e.g., "PS Ausgram")
- Religion: Hindu, Muslim, Christian, Buddhist, Sikh, Jain, Brahmo
- Occupation: Cultivator, Trader, Weaver, etc. (often at the end)
- Original text: Keep the full original family details text

Example: "S/o Ses Ismail of Jamtaa PS Ausgram, Burdwan Muslim Cultivator"
Should extract:
- family_details: "S/o Ses Ismail of Jamtaa PS Ausgram, Burdwan Muslim Cultivator"
- police_station: "Ausgram"
- religion: "Muslim"
- occupation: "Cultivator"

HANDWRITING INTERPRETATION FOR NAMES AND RELATIONSHIPS:
- Bengali names often have variations: Ram/Rom, Nandi/Uandi, Krishna/Kvishna
- Common relationships: S/o (son of), D/o (daughter of), W/o (wife of)
- 'a'→'o', 'n'→'u', 'r'→'v', 'l'→'t' variations are common
- Numbers: '1'→'l', '5'→'S', '0'→'O', '6'→'G', '9'→'g'
- Use geographical knowledge to correct place names and PS names

EXTRACTION GUIDELINES:
- Extract ALL entries row by row systematically
- For unclear names: [UNCLEAR: best_guess_name]
- For illegible text: [ILLEGIBLE]
- For ditto marks (do, ", —): Write the actual entry value (e.g., name of the person or location)
- Pay special attention to relationship indicators (S/o, D/o, W/o)
- Use geographical knowledge to correct OCR errors in place names
- Extract PS, religion, and occupation from family details when present

Return data in this JSON format:
{
  "document_type": "INDEX_1",
  "year": "extracted year",
  "office_location": "extracted location",
  "entries": [
    {
      "serial_number": "entry number",
      "name_of_person": "full person name",
      "family_details": "full relationship information",
      "police_station": "PS name if found, otherwise null",
      "religion": "religion if found, otherwise null",
      "occupation": "occupation if found, otherwise null",
      "interest_of_person": "legal interest or role",
      "where_registered": "name of the place",
      "book_1_volume": "volume number",
      "book_2_page": "page number"
    }
  ],
  "confidence": "high/medium/low",
  "extraction_notes": "observations about handwriting, name interpretations, address corrections"
}

Focus on accurate name extraction, relationship identification, and enhanced parsing of PS, religion, and occupation for genealogical purposes.
`

const index2Prompt = `
GEOGRAPHICAL KNOWLEDGE FOR 1960s WEST BENGAL:

DISTRICTS AND SUBDIVISIONS:
- Hooghly: Chinsurah, Serampore, Chandernagore, Arambagh, Khanakul
- Burdwan: Ausgram, Kalna, Katwa, Dainhat, Memari, Jamalpur
- 24 Parganas: Barasat, Basirhat, Diamond Harbour, Alipore, Baruipur, Canning
- Nadia: Krishnanagar, Ranaghat, Kalyani, Tehatta, Chapra
- Murshidabad: Berhampore, Kandi, Lalbagh, Hariharpara, Nawda
- Birbhum: Suri, Bolpur, Rampurhat, Sainthia, Mayurbhanj
- Bankura: Bankura, Bishnupur, Khatra, Taldangra, Onda
- Purulia: Purulia, Raghunathpur, Jhalda, Para, Baghmundi
- Midnapore: Midnapore, Tamluk, Contai, Jhargram, Ghatal
- Jalpaiguri: Jalpaiguri, Siliguri, Kalimpong, Alipurduar
- Darjeeling: Darjeeling, Kurseong, Mirik
- Cooch Behar: Cooch Behar, Tufanganj, Mathabhanga, Mekhliganj
- West Dinajpur: Balurghat, Raiganj, Islampur, Kushmandi
- Malda: English Bazar, Chanchal, Ratua, Habibpur

COMMON POLICE STATIONS (PS):
Ausgram, Chinsurah, Serampore, Chandernagore, Berhampore, Krishnanagar, Ranaghat,
Suri, Bolpur, Bankura, Bishnupur, Midnapore, Tamluk, Jalpaiguri, Siliguri,
Balurghat, Raiganj, Arambagh, Kalna, Katwa, Memari, Barasat, Basirhat

COMMON RELIGIONS:
Hindu, Muslim, Christian, Buddhist, Sikh, Jain, Brahmo

COMMON OCCUPATIONS (1960s):
Cultivator, Trader, Weaver, Blacksmith, Carpenter, Teacher, Clerk, Zamindar,
Shopkeeper, Fisherman, Boatman, Goldsmith, Tailor, Barber, Washerman,
Potter, Milkman, Palanquin Bearer, Cooly, Service, Business, Retired

COMMON MISSPELLINGS:
- "Ausgram" often misread as "Ausgrama"
- "Katwa" as "Katra"

Use this knowledge to correct common OCR errors in place names, police stations,
religions, and occupations. Apply phonetic matching for Bengali names.

Extract data from this INDEX II document. Return ONLY JSON - no explanations, no reasoning.

COLUMN STRUCTURE FOR INDEX II:
1. "Serial number" → Sequential entry number
2. "Property name" → General information about the property
3. "Pargana/Town/Thana" → Location details
4. "Location" → District and sub-district information
5. "Nature of transaction" → Type of transaction (sale, mortgage, lease, gift, etc.)
6. "Where registered" → Registration office location
7. "Book 1 Volume" → Volume number (Roman or Arabic numerals)
8. "Book 1 Page" → Page number reference

PROPERTY DESCRIPTION INTERPRETATION:
- It might have the "Khatian" or "Khatian" number or "Kh" number. Unit is in "Satak" or "Bigha" mostly.
- Look for plot numbers, survey numbers, boundaries (North, South, East, West)
- Property types: house, land, garden, tank, road, etc.
- Measurements in local units: bigha, katha, chhatak, ganda
- Boundary descriptions: "bounded by", "adjacent to", "touching"
- Use geographical knowledge to correct place names in property descriptions

TRANSACTION TYPES:
- Sale deed, mortgage, lease, gift, partition, exchange
- Legal terminology in Bengali/English mixed script

EXTRACTION GUIDELINES:
- Extract ALL entries row by row systematically
- For unclear property descriptions: [UNCLEAR: best_guess_description]
- For illegible locations: [ILLEGIBLE]
- For ditto marks (do, ", —): Write the actual entry value (e.g., name of the place or location)
- Pay attention to property boundaries and measurements
- Use geographical knowledge to correct OCR errors in location names

Return data in this JSON format:
{
  "document_type": "INDEX_2",
  "year": "extracted year",
  "office_location": "extracted location",
  "entries": [
    {
      "serial_number": "entry number",
      "property_name": "general information about the property",
      "Pargana/Town/Thana": "location details",
      "location": "district and sub-district information",
      "nature_of_transaction": "transaction type",
      "where_registered": "registration office location",
      "book_1_volume": "volume number",
      "book_1_page": "page number"
    }
  ],
  "confidence": "high/medium/low",
  "extraction_notes": "observations about property descriptions, location interpretations, transaction types identified"
}

Focus on accurate property description and location identification for historical land records.
Use geographical knowledge to ensure place names are correctly identified.
`
