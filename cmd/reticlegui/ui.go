package main

const htmlContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Reticle</title>
    <style>
        body { margin: 0; font-family: -apple-system, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; background: #0f0f0f; color: #eee; height: 100vh; display: flex; flex-direction: column; overflow: hidden; }
        nav { display: flex; gap: 2px; background: #1a1a1a; border-bottom: 1px solid #333; padding: 6px 8px 0; flex-shrink: 0; }
        nav button { background: #1a1a1a; color: #888; border: 1px solid transparent; border-bottom: none; padding: 6px 14px; font-size: 12px; cursor: pointer; }
        nav button.active { background: #0f0f0f; color: #fff; border-color: #333; }
        nav button:disabled { opacity: 0.4; cursor: default; }
        main { flex: 1; position: relative; }
        main > section { display: none; position: absolute; inset: 0; }
        main > section.active { display: block; }
        #log { font-family: Consolas, Monaco, monospace; font-size: 12px; padding: 10px; overflow-y: auto; white-space: pre-wrap; height: 100%; box-sizing: border-box; background: #060606; color: #ccc; }
        #log .warn { color: #ff9800; }
        #log .err { color: #f44336; }
        #log .sys { color: #2196f3; }
        iframe { width: 100%; height: 100%; border: none; background: transparent; }
    </style>
</head>
<body>
    <nav>
        <button id="btn-overlay" disabled onclick="show('overlay')">OVERLAY</button>
        <button id="btn-log" class="active" onclick="show('log')">TERMINAL</button>
        <button id="btn-settings" disabled onclick="show('settings')">SETTINGS</button>
    </nav>
    <main>
        <section id="overlay"><iframe id="frame-overlay"></iframe></section>
        <section id="log" class="active"></section>
        <section id="settings"><iframe id="frame-settings"></iframe></section>
    </main>
    <script>
        const log = document.getElementById('log');

        function show(id) {
            document.querySelectorAll('nav button').forEach(b => b.classList.toggle('active', b.id === 'btn-' + id));
            document.querySelectorAll('main > section').forEach(s => s.classList.toggle('active', s.id === id));
        }

        window.addLogLine = function(text) {
            const line = document.createElement('div');
            line.innerText = text;
            if (text.startsWith('>')) line.className = 'sys';
            else if (text.includes('ERROR')) line.className = 'err';
            else if (text.includes('WARN')) line.className = 'warn';
            log.appendChild(line);
            log.scrollTop = log.scrollHeight;
        };

        window.setTerminalTitle = function(name) {
            document.getElementById('btn-log').innerText = name.toUpperCase();
        };

        window.enableApp = function(url) {
            document.getElementById('frame-overlay').src = url + '/';
            document.getElementById('frame-settings').src = url + '/settings.html';
            document.getElementById('btn-overlay').disabled = false;
            document.getElementById('btn-settings').disabled = false;
            show('overlay');
        };

        document.addEventListener('keydown', function(event) {
            if (event.key === 'F5' || (event.ctrlKey && event.key === 'r')) event.preventDefault();
        });
    </script>
</body>
</html>
`
